package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patient-summary/internal/adapters/openmrs"
	pg "patient-summary/internal/adapters/storage/postgres"
	"patient-summary/internal/domain/summary"
	"patient-summary/internal/extension"
	"patient-summary/internal/platform/config"
	"patient-summary/internal/platform/logger"
	"patient-summary/internal/router"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func summaryCmd() *cobra.Command {
	var page, pageSize int
	cmd := &cobra.Command{
		Use:   "summary <widget> <patientUUID>",
		Short: "Render one summary widget for a patient as a text table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, client, err := bootstrap()
			if err != nil {
				return err
			}
			svc := summary.NewService(summary.Options{
				Definitions:     router.Widgets(client),
				Logger:          log,
				DefaultPageSize: cfg.DefaultPageSize,
			})
			defer svc.Close()

			v, err := svc.Render(cmd.Context(), args[0], args[1], page, pageSize)
			if err != nil {
				return err
			}
			return summary.RenderText(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "rows per page (0 = configured default)")
	return cmd
}

func manifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Print the extension manifest as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, client, err := bootstrap()
			if err != nil {
				return err
			}
			m := extension.Build(router.Widgets(client), settingsFrom(cfg))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		},
	}
}

func bootstrap() (*config.Config, logger.Logger, *openmrs.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Out:    os.Stderr,
	})
	client, err := openmrs.NewClient(openmrs.Config{
		BaseURL:                 cfg.OpenMRSBaseURL,
		Username:                cfg.OpenMRSUsername,
		Password:                cfg.OpenMRSPassword,
		Timeout:                 cfg.OpenMRSTimeout,
		RateLimitRPS:            cfg.OpenMRSRateLimitRPS,
		RateLimitBurst:          cfg.OpenMRSRateLimitBurst,
		EncounterRepresentation: cfg.EncounterRepresentation,
	}, log.With(map[string]any{"module": "openmrs"}))
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, client, nil
}

func settingsFrom(cfg *config.Config) extension.Settings {
	return extension.Settings{
		DefaultPageSize:           cfg.DefaultPageSize,
		EncounterRepresentation:   cfg.EncounterRepresentation,
		FollowupEncounterTypeUUID: cfg.FollowupEncounterTypeUUID,
	}
}

func runServer() error {
	cfg, log, client, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()
		if err := pg.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("access log on postgres", nil)
	}

	settings := settingsFrom(cfg)
	app := router.New(router.Options{
		Backend:                   client,
		Logger:                    log,
		DB:                        db,
		DefaultPageSize:           settings.DefaultPageSize,
		WidgetIdleTimeout:         cfg.WidgetIdleTimeout,
		FollowupEncounterTypeUUID: settings.FollowupEncounterTypeUUID,
		EncounterRepresentation:   settings.EncounterRepresentation,
	})
	defer app.Close()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      app.Handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.OpenMRSTimeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
