package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/branch-salary-etl/internal/config"
	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/attendance"
	appHTTP "github.com/cmlabs-hris/branch-salary-etl/internal/handler/http"
	"github.com/cmlabs-hris/branch-salary-etl/internal/pkg/cron"
	"github.com/cmlabs-hris/branch-salary-etl/internal/pkg/jwt"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	var origins []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the run API and refresh the destination on ETL_INTERVAL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return fmt.Errorf("JWT_SECRET_KEY is required to serve")
			}

			a, err := newApp(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			return serve(cmd.Context(), cfg, a, origins)
		},
	}

	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "Allowed CORS origins")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, a *app, origins []string) error {
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	branchSalaryHandler := appHTTP.NewBranchSalaryHandler(a.service)
	router := appHTTP.NewRouter(JWTService, branchSalaryHandler, a.metrics, appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		Version:        version,
		AllowedOrigins: origins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	scheduler := cron.NewScheduler(gCtx)
	cron.NewBranchSalaryJobs(a.service, cfg.ETL.Interval).RegisterJobs(scheduler)

	g.Go(func() error {
		slog.Info("Server starting", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.ETL.ShiftRulesFile != "" {
		g.Go(func() error {
			return config.WatchShiftRules(gCtx, cfg.ETL.ShiftRulesFile, func(rules attendance.ShiftRules) {
				if err := a.service.SetShiftRules(rules); err != nil {
					slog.Error("Rejected shift rules", "error", err)
				}
			})
		})
	}

	scheduler.Start()

	g.Go(func() error {
		<-gCtx.Done()
		scheduler.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
