package branchsalary

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/attendance"
	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/employee"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

type BranchSalaryServiceImpl struct {
	timesheets attendance.TimesheetSource
	roster     employee.RosterSource
	writer     branchsalary.RateWriter
	reader     branchsalary.RateReader
	metrics    *runMetrics
	workers    int
	now        func() time.Time

	mu       sync.Mutex
	pipeline *Pipeline
	latest   *branchsalary.Report
	running  bool
}

// NewBranchSalaryService wires the sources and destination together. The
// destination is also used for reads when it implements RateReader. Run
// metrics are registered on registry, which may be nil.
func NewBranchSalaryService(
	timesheets attendance.TimesheetSource,
	roster employee.RosterSource,
	writer branchsalary.RateWriter,
	rules attendance.ShiftRules,
	workers int,
	registry prometheus.Registerer,
) (branchsalary.BranchSalaryService, error) {
	pipeline, err := NewPipeline(rules, workers)
	if err != nil {
		return nil, err
	}
	reader, _ := writer.(branchsalary.RateReader)

	return &BranchSalaryServiceImpl{
		timesheets: timesheets,
		roster:     roster,
		writer:     writer,
		reader:     reader,
		metrics:    newRunMetrics(registry),
		workers:    workers,
		now:        time.Now,
		pipeline:   pipeline,
	}, nil
}

func (s *BranchSalaryServiceImpl) Run(ctx context.Context) (branchsalary.Report, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return branchsalary.Report{}, branchsalary.ErrRunInProgress
	}
	s.running = true
	pipeline := s.pipeline
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	report, err := s.run(ctx, pipeline)
	if err != nil {
		s.metrics.failed()
		slog.Error("Branch salary pipeline failed", "error", err)
		return branchsalary.Report{}, err
	}

	s.metrics.succeeded(report)
	s.mu.Lock()
	s.latest = &report
	s.mu.Unlock()
	return report, nil
}

func (s *BranchSalaryServiceImpl) run(ctx context.Context, pipeline *Pipeline) (branchsalary.Report, error) {
	runID, err := uuid.NewV7()
	if err != nil {
		return branchsalary.Report{}, fmt.Errorf("generate run id: %w", err)
	}
	started := s.now()
	logger := slog.With("run_id", runID.String())
	logger.Info("Starting branch salary pipeline")

	var (
		timesheetRows []attendance.TimesheetRow
		rosterRows    []employee.RosterRow
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.timesheets.ListTimesheets(gCtx)
		if err != nil {
			return fmt.Errorf("load timesheets: %w", err)
		}
		timesheetRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.roster.ListEmployees(gCtx)
		if err != nil {
			return fmt.Errorf("load employees: %w", err)
		}
		rosterRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return branchsalary.Report{}, err
	}
	logger.Info("Loaded source data", "timesheets", len(timesheetRows), "employees", len(rosterRows))

	res, err := pipeline.Compute(ctx, timesheetRows, rosterRows)
	if err != nil {
		return branchsalary.Report{}, err
	}

	if err := s.writer.Replace(ctx, res.Rates); err != nil {
		return branchsalary.Report{}, fmt.Errorf("replace destination: %w", err)
	}
	logger.Info("Branch salary pipeline completed", "rates", len(res.Rates), "rejected", res.Counts.Rejected())

	return branchsalary.Report{
		RunID:      runID,
		StartedAt:  started,
		FinishedAt: s.now(),
		Counts:     res.Counts,
		Rates:      res.Rates,
	}, nil
}

func (s *BranchSalaryServiceImpl) LatestReport() (branchsalary.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return branchsalary.Report{}, branchsalary.ErrNoRunYet
	}
	return *s.latest, nil
}

func (s *BranchSalaryServiceImpl) ListRates(ctx context.Context, filter branchsalary.RateFilter) ([]branchsalary.RateResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if s.reader == nil {
		return nil, branchsalary.ErrRatesUnavailable
	}

	rates, err := s.reader.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]branchsalary.RateResponse, 0, len(rates))
	for _, r := range rates {
		out = append(out, branchsalary.NewRateResponse(r))
	}
	return out, nil
}

func (s *BranchSalaryServiceImpl) SetShiftRules(rules attendance.ShiftRules) error {
	pipeline, err := NewPipeline(rules, s.workers)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.pipeline = pipeline
	s.mu.Unlock()
	slog.Info("Shift rules updated", "rules", fmt.Sprintf("%+v", rules))
	return nil
}
