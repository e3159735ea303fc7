package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	dashboardhandler "enrolsight/internal/dashboard/handler"
	jwttoken "enrolsight/internal/jwt_token"
	"enrolsight/internal/platform/config"
	"enrolsight/internal/platform/httpserver"
	"enrolsight/internal/platform/logger"
	"enrolsight/internal/platform/metrics"
	"enrolsight/internal/platform/tracing"
	httptransport "enrolsight/internal/transport/http"
)

// main loads configuration, wires the modules and runs the HTTP server and
// the dataset reloader until SIGINT or SIGTERM.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	auditDeps, err := buildAudit(ctx, cfg.Audit, reg, log)
	if err != nil {
		return err
	}
	defer auditDeps.Close()

	datasetService, closeDataset, err := buildDataset(ctx, cfg.Dataset, auditDeps.Publisher, log)
	if err != nil {
		return err
	}
	defer closeDataset()

	dashboardService, closeCache, err := buildDashboard(ctx, cfg.Redis, datasetService, auditDeps.Publisher, reg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience)
	router := httptransport.NewRouter(httptransport.Config{
		Logger:         log,
		Validator:      jwttoken.NewJWTServiceAdapter(jwtService),
		Latency:        metrics.New(reg),
		Gatherer:       reg,
		RequestTimeout: cfg.Server.RequestTimeout,
		Ready: func(ctx context.Context) error {
			_, err := datasetService.Snapshot(ctx)
			return err
		},
		API: []httptransport.Registrar{dashboardhandler.New(dashboardService, log)},
	})
	srv := httpserver.New(cfg.Server.Addr, router, cfg.Server.RequestTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting enrolsight", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return datasetService.Run(gctx, cfg.Dataset.ReloadInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
