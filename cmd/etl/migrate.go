package main

import (
	"github.com/cmlabs-hris/branch-salary-etl/internal/pkg/database"
	"github.com/cmlabs-hris/branch-salary-etl/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the timesheets, employees and branch_salary tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
			if err != nil {
				return err
			}
			defer db.Close()

			return migrations.Apply(cmd.Context(), db)
		},
	}
}
