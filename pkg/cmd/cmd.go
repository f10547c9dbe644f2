// Package cmd builds the sendgate CLI.
package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/reachforge/sendgate/config"
	"github.com/reachforge/sendgate/pkg/api"
	"github.com/reachforge/sendgate/pkg/db"
	"github.com/reachforge/sendgate/pkg/email"
	"github.com/reachforge/sendgate/pkg/metrics"
	"github.com/reachforge/sendgate/pkg/quota"
	"github.com/reachforge/sendgate/pkg/workers"
)

// Command builds the root CLI command.
func Command() *cobra.Command {
	c := &cobra.Command{
		SilenceUsage: true,
		Use:          os.Args[0],
		Long:         "Sendgate decides whether an outbound email may be sent right now and through which inbox.",
	}
	c.AddCommand(
		serveCommand(),
		migrateCommand(),
	)
	return c
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		SilenceUsage: true,
		Use:          "serve",
		Short:        "Run the sendgate API server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		SilenceUsage: true,
		Use:          "migrate",
		Short:        "Run the database migrations and exit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetConfig()
			if err != nil {
				return errors.Wrap(err, "failed to load configuration")
			}
			dbConn, err := db.NewDatabaseConnection(&cfg.DatabaseConfig)
			if err != nil {
				return errors.Wrap(err, "failed to connect to database")
			}
			if err := dbConn.Migrate(); err != nil {
				return errors.Wrap(err, "failed to run migrations")
			}
			glog.Info("Database migrations applied.")
			return nil
		},
	}
}

func serve() error {
	cfg, err := config.GetConfig()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	dbConn, err := db.NewDatabaseConnection(&cfg.DatabaseConfig)
	if err != nil {
		return errors.Wrap(err, "failed to connect to database")
	}
	if err := dbConn.Migrate(); err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}

	catalog := quota.DefaultCatalog()
	if cfg.PlanCatalogFile != "" {
		catalog, err = quota.LoadCatalog(cfg.PlanCatalogFile)
		if err != nil {
			return errors.Wrap(err, "failed to load plan catalog")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transport, err := email.NewTransport(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "failed to initialize email transport")
	}

	engine := quota.NewEngine(dbConn, catalog)
	orchestrator := email.NewOrchestrator(engine, dbConn, transport)
	sendHandler := api.NewSendHandler(engine, orchestrator, dbConn)

	server := http.Server{Addr: cfg.ServerAddress, Handler: api.SetupRoutes(cfg, sendHandler)}
	metricsServer := metrics.NewMetricsServer(cfg.MetricsAddress)

	go func() {
		glog.Infof("Serving metrics on %s", cfg.MetricsAddress)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			glog.Errorf("Metrics ListenAndServe error: %v", err)
		}
	}()

	go func() {
		glog.Infof("Serving API on %s", cfg.ServerAddress)
		if cfg.EnableHTTPS {
			if err := server.ListenAndServeTLS(cfg.HTTPSCertFile, cfg.HTTPSKeyFile); err != http.ErrServerClosed {
				glog.Fatalf("HTTPS API ListenAndServe error: %v", err)
			}
		} else {
			if err := server.ListenAndServe(); err != http.ErrServerClosed {
				glog.Fatalf("HTTP API ListenAndServe error: %v", err)
			}
		}
	}()

	cleanup := &workers.CleanupCounters{
		DbConn:        dbConn,
		Period:        cfg.CounterCleanupPeriod,
		RetentionDays: cfg.CounterRetentionDays,
	}
	go func() {
		if err := cleanup.Run(ctx); err != nil {
			glog.Infof("Cleanup worker exited: %v", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	notifySignals := []os.Signal{os.Interrupt, unix.SIGTERM}
	signal.Notify(sigs, notifySignals...)

	glog.Infof("Application started. Will shut down gracefully on %s.", notifySignals)
	sig := <-sigs
	glog.Infof("Caught %s signal", sig)

	cancel()
	if err := server.Shutdown(context.Background()); err != nil {
		glog.Errorf("API Shutdown error: %v", err)
	}
	if err := metricsServer.Close(); err != nil {
		glog.Errorf("Failed to close metrics server: %v", err)
	}

	glog.Info("Sendgate application has been stopped")
	return nil
}
