package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
)

// BranchSalaryJobs contains the periodic pipeline run
type BranchSalaryJobs struct {
	service  branchsalary.BranchSalaryService
	interval time.Duration
}

func NewBranchSalaryJobs(service branchsalary.BranchSalaryService, interval time.Duration) *BranchSalaryJobs {
	return &BranchSalaryJobs{
		service:  service,
		interval: interval,
	}
}

func (j *BranchSalaryJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("refresh_branch_salary", j.interval, j.RefreshBranchSalary)
}

// RefreshBranchSalary recomputes the destination. A run already started
// through the API is reported as ErrSkip.
func (j *BranchSalaryJobs) RefreshBranchSalary(ctx context.Context) error {
	slog.Info("Cron: Starting branch salary refresh")

	report, err := j.service.Run(ctx)
	if errors.Is(err, branchsalary.ErrRunInProgress) {
		return fmt.Errorf("%w: %w", ErrSkip, err)
	}
	if err != nil {
		return err
	}

	slog.Info("Cron: Branch salary refresh completed",
		"run_id", report.RunID,
		"rates", len(report.Rates),
		"rejected", report.Counts.Rejected())
	return nil
}
