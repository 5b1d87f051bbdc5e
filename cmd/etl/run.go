package main

import (
	"log/slog"

	"github.com/cmlabs-hris/branch-salary-etl/internal/config"
	"github.com/spf13/cobra"
)

type runOptions struct {
	timesheets string
	employees  string
	output     string
	rules      string
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline once and replace the destination",
		Long: "Run the pipeline once. Passing --timesheets and --employees reads spreadsheets " +
			"(.csv, .xlsx) instead of Postgres; passing --output writes a CSV file instead of " +
			"the destination table, and --output - prints it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.apply)
			if err != nil {
				return err
			}

			a, err := newApp(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.service.Run(cmd.Context())
			if err != nil {
				return err
			}

			slog.Info("Run finished",
				"run_id", report.RunID,
				"duration", report.FinishedAt.Sub(report.StartedAt),
				"rates", report.Counts.Rates,
				"undefined_rates", report.Counts.UndefinedRates,
				"duplicates", report.Counts.DuplicateRecords,
				"unmatched_intervals", report.Counts.UnmatchedIntervals,
				"rejected", report.Counts.Rejected())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.timesheets, "timesheets", "", "Timesheet file (.csv or .xlsx)")
	cmd.Flags().StringVar(&opts.employees, "employees", "", "Employee roster file (.csv or .xlsx)")
	cmd.Flags().StringVar(&opts.output, "output", "", "Write rates to this CSV file, or - for stdout")
	cmd.Flags().StringVar(&opts.rules, "shift-rules", "", "YAML file overriding the shift rules")
	cmd.MarkFlagsRequiredTogether("timesheets", "employees")

	return cmd
}

func (o runOptions) apply(c *config.Config) {
	if o.timesheets != "" {
		c.ETL.Source = config.SourceFile
		c.ETL.TimesheetsPath = o.timesheets
		c.ETL.EmployeesPath = o.employees
	}
	switch o.output {
	case "":
	case "-":
		c.ETL.Destination = config.DestinationCSV
		c.ETL.OutputPath = ""
	default:
		c.ETL.Destination = config.DestinationCSV
		c.ETL.OutputPath = o.output
	}
	if o.rules != "" {
		c.ETL.ShiftRulesFile = o.rules
	}
}
