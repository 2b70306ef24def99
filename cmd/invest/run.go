package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mtlprog/invest/internal/api"
	"github.com/mtlprog/invest/internal/config"
	"github.com/mtlprog/invest/internal/dashboard"
	"github.com/mtlprog/invest/internal/database"
	"github.com/mtlprog/invest/internal/export"
	"github.com/mtlprog/invest/internal/portfolio"
	"github.com/mtlprog/invest/internal/remote"
	"github.com/mtlprog/invest/internal/snapshot"
	"github.com/mtlprog/invest/internal/worker"
)

type services struct {
	portfolios *portfolio.Service
	snapshots  *snapshot.Service
	export     *export.Service
	dashboard  *dashboard.State
	close      func()
}

// buildServices wires storage and services. An empty DATABASE_URL selects
// the in-memory store with sample data.
func buildServices(ctx context.Context, cfg config.Config) (*services, error) {
	var (
		portfolioRepo portfolio.Repository
		snapshotRepo  snapshot.Repository
		closeFn       = func() {}
	)

	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		portfolioRepo = portfolio.NewPgRepository(pool)
		snapshotRepo = snapshot.NewPgRepository(pool)
		closeFn = pool.Close
	} else {
		slog.Warn("DATABASE_URL not set, using in-memory store")
		portfolioRepo = portfolio.NewSampleRepository(time.Now().UTC())
		snapshotRepo = snapshot.NewMemoryRepository()
	}

	portfolioSvc := portfolio.NewService(portfolioRepo)
	svc := &services{
		portfolios: portfolioSvc,
		snapshots:  snapshot.NewService(portfolioSvc, snapshotRepo),
		export:     export.NewService(portfolioSvc),
		dashboard:  dashboard.NewState(),
		close:      closeFn,
	}
	svc.loadDashboard(ctx, cfg)
	return svc, nil
}

// loadDashboard fills the dashboard from the configured source. Any failure
// leaves the seed state in place.
func (s *services) loadDashboard(ctx context.Context, cfg config.Config) {
	var src dashboard.Source
	switch cfg.DashboardSource {
	case config.SourceStore:
		src = s.portfolios
	case config.SourceRemote:
		src = remote.NewClient(cfg.APIBaseURL, cfg.RemoteTimeout, cfg.RemoteRetryMax, cfg.RemoteRetryDelay)
	default:
		return
	}
	if err := s.dashboard.Load(ctx, src); err != nil {
		slog.Warn("failed to load dashboard, keeping seed portfolio", "source", cfg.DashboardSource, "error", err)
		return
	}
	slog.Info("dashboard loaded", "source", cfg.DashboardSource, "portfolios", len(s.dashboard.Portfolios()))
}

func runServe(parent context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.close()

	snapshotWorker := worker.NewSnapshotWorker(svc.snapshots, cfg.SnapshotInterval)
	go snapshotWorker.Run(ctx)

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, write endpoints are unprotected")
	}

	srv := api.NewServer(cfg.HTTPPort, api.Deps{
		Portfolios:    svc.portfolios,
		Snapshots:     svc.snapshots,
		Export:        svc.export,
		Dashboard:     svc.dashboard,
		LiveDashboard: cfg.DashboardSource == config.SourceStore,
		AdminAPIKey:   cfg.AdminAPIKey,
	})

	go func() {
		slog.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	slog.Info("Shutdown complete")
	return nil
}

func runRender(ctx context.Context, cfg config.Config, w io.Writer) error {
	svc, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.close()

	return dashboard.WriteHTML(w, svc.dashboard.View())
}

func runExport(ctx context.Context, cfg config.Config, path string) error {
	svc, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := svc.export.Write(ctx, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	slog.Info("workbook written", "path", path)
	return nil
}
