package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/Bandplan/internal/api"
	"github.com/MikeSquared-Agency/Bandplan/internal/catalog"
	"github.com/MikeSquared-Agency/Bandplan/internal/config"
	"github.com/MikeSquared-Agency/Bandplan/internal/evaluation"
	"github.com/MikeSquared-Agency/Bandplan/internal/hermes"
	"github.com/MikeSquared-Agency/Bandplan/internal/metrics"
	"github.com/MikeSquared-Agency/Bandplan/internal/report"
	"github.com/MikeSquared-Agency/Bandplan/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if args := flag.Args(); len(args) > 0 {
		cfg.Inputs = args
	}

	logger := config.NewLogger(os.Stderr, cfg.Logging)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cat, err := loadCatalog(cfg)
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("catalog loaded", "scenarios", len(cat.Scenarios), "link_distance_km", cat.LinkDistance)

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	collector, err := metrics.NewCollector(nil)
	if err != nil {
		logger.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	// Database (optional)
	var db store.Store
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
		db = pg
		logger.Info("connected to database")
	}

	ev := evaluation.New(cat, hermesClient, collector, logger)
	res, err := ev.RunFiles(ctx, cfg.Inputs)
	if err != nil {
		logger.Error("evaluation failed", "error", err)
		os.Exit(1)
	}

	if err := writeReport(cfg.Report.Path, res); err != nil {
		logger.Error("failed to write report", "error", err)
		os.Exit(1)
	}

	if db != nil {
		run, scores, err := store.NewRun(res)
		if err != nil {
			logger.Error("failed to encode run", "error", err)
			os.Exit(1)
		}
		if err := db.SaveRun(ctx, run, scores); err != nil {
			logger.Error("failed to save run", "run_id", run.ID, "error", err)
			os.Exit(1)
		}
		logger.Info("run saved", "run_id", run.ID)
	}

	if !cfg.Server.Enabled {
		return
	}
	serve(ctx, cfg, db, collector, logger)
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog == "" {
		return catalog.Default(cfg.Link.DistanceKm), nil
	}
	return catalog.Load(cfg.Catalog, cfg.Link.DistanceKm)
}

func writeReport(path string, res *evaluation.Result) error {
	if path == "" {
		return report.Write(os.Stdout, res)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := report.Write(f, res); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}

func serve(ctx context.Context, cfg *config.Config, db store.Store, collector *metrics.Collector, logger *slog.Logger) {
	var servers []*http.Server

	if db != nil {
		servers = append(servers, &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: api.NewRouter(db, logger),
		})
	} else {
		logger.Warn("no database configured, runs API disabled")
	}
	servers = append(servers, &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(collector),
	})

	for _, srv := range servers {
		go func(srv *http.Server) {
			logger.Info("server starting", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != http.ErrServerClosed {
				logger.Error("server error", "addr", srv.Addr, "error", err)
			}
		}(srv)
	}

	// Graceful shutdown
	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	for _, srv := range servers {
		_ = srv.Shutdown(shutdownCtx)
	}

	logger.Info("shutdown complete")
}
