package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cmlabs-hris/branch-salary-etl/internal/config"
	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/attendance"
	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/employee"
	"github.com/cmlabs-hris/branch-salary-etl/internal/pkg/database"
	"github.com/cmlabs-hris/branch-salary-etl/internal/repository/file"
	"github.com/cmlabs-hris/branch-salary-etl/internal/repository/postgresql"
	branchSalaryService "github.com/cmlabs-hris/branch-salary-etl/internal/service/branchsalary"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type app struct {
	db      *database.DB
	service branchsalary.BranchSalaryService
	metrics *prometheus.Registry
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// newApp builds the pipeline service for cfg. out receives the CSV when the
// destination is csv without an OUTPUT_PATH.
func newApp(cfg *config.Config, out io.Writer) (*app, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a := &app{metrics: registry}

	if cfg.UsesDatabase() {
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.db = db
	}

	var (
		timesheets attendance.TimesheetSource
		roster     employee.RosterSource
	)
	switch cfg.ETL.Source {
	case config.SourceFile:
		timesheets = file.NewTimesheetFile(cfg.ETL.TimesheetsPath)
		roster = file.NewRosterFile(cfg.ETL.EmployeesPath)
	default:
		timesheets = postgresql.NewTimesheetRepository(a.db)
		roster = postgresql.NewEmployeeRepository(a.db)
	}

	var writer branchsalary.RateWriter
	switch {
	case cfg.ETL.Destination == config.DestinationPostgres:
		repo, err := postgresql.NewBranchSalaryRepository(a.db, cfg.ETL.DestinationTable)
		if err != nil {
			a.Close()
			return nil, err
		}
		writer = repo
	case cfg.ETL.OutputPath != "":
		writer = file.NewRateCSV(cfg.ETL.OutputPath)
	default:
		writer = streamWriter{w: out}
	}

	rules, err := config.LoadShiftRules(cfg.ETL.ShiftRulesFile)
	if err != nil {
		a.Close()
		return nil, err
	}

	svc, err := branchSalaryService.NewBranchSalaryService(timesheets, roster, writer, rules, cfg.ETL.AggregateWorkers, a.metrics)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.service = svc
	return a, nil
}

// streamWriter prints each run's result set as CSV.
type streamWriter struct {
	w io.Writer
}

func (s streamWriter) Replace(ctx context.Context, rates []branchsalary.BranchMonthRate) error {
	return file.WriteRatesCSV(s.w, rates)
}
