package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"enrolsight/internal/dashboard"
	"enrolsight/internal/dashboard/cache"
	dashboardmetrics "enrolsight/internal/dashboard/metrics"
	"enrolsight/internal/dashboard/ports"
	"enrolsight/internal/dataset"
	datasetfile "enrolsight/internal/dataset/store/file"
	datasetpg "enrolsight/internal/dataset/store/postgres"
	"enrolsight/internal/platform/config"
	platformredis "enrolsight/internal/platform/redis"
	"enrolsight/pkg/platform/audit"
	"enrolsight/pkg/platform/audit/publisher"
	"enrolsight/pkg/platform/audit/publishers/kafka"
	"enrolsight/pkg/platform/audit/store/memory"
	auditpg "enrolsight/pkg/platform/audit/store/postgres"
)

type auditDeps struct {
	Publisher *publisher.Publisher
	db        *sql.DB
	sink      *kafka.Sink
}

// Close drains the publisher before closing what it writes to.
func (d *auditDeps) Close() {
	d.Publisher.Close()
	if d.sink != nil {
		d.sink.Close()
	}
	if d.db != nil {
		_ = d.db.Close()
	}
}

func buildAudit(ctx context.Context, cfg config.Audit, reg prometheus.Registerer, log *slog.Logger) (*auditDeps, error) {
	deps := &auditDeps{}

	var store audit.Store = memory.NewInMemoryStore()
	if cfg.DatabaseURL != "" {
		db, err := auditpg.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		pg := auditpg.New(db)
		if err := pg.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		deps.db, store = db, pg
		log.Info("audit store: postgres")
	}

	opts := []publisher.Option{
		publisher.WithAsyncBuffer(cfg.BufferSize),
		publisher.WithLogger(log),
		publisher.WithMetrics(publisher.NewMetrics(reg)),
	}
	if len(cfg.KafkaBrokers) > 0 {
		sink, err := kafka.Dial(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			if deps.db != nil {
				_ = deps.db.Close()
			}
			return nil, err
		}
		deps.sink = sink
		opts = append(opts, publisher.WithSinks(sink))
		log.Info("audit stream enabled", "topic", cfg.KafkaTopic)
	}

	deps.Publisher = publisher.NewPublisher(store, opts...)
	return deps, nil
}

func buildDataset(ctx context.Context, cfg config.Dataset, auditor dataset.AuditPort, log *slog.Logger) (*dataset.Service, func(), error) {
	var source dataset.Source
	closeFn := func() {}
	if cfg.DatabaseURL != "" {
		pool, err := datasetpg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		pgSource := datasetpg.New(pool, cfg.Table)
		if err := pgSource.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		source, closeFn = pgSource, pool.Close
	} else {
		source = datasetfile.New(cfg.File)
	}

	svc := dataset.NewService(source, dataset.WithLogger(log), dataset.WithAuditor(auditor))
	if _, err := svc.Reload(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return svc, closeFn, nil
}

func buildDashboard(ctx context.Context, cfg config.RedisConfig, datasets ports.DatasetPort, auditor *publisher.Publisher, reg prometheus.Registerer, log *slog.Logger) (*dashboard.Service, func(), error) {
	local := cache.NewMemory()
	var store ports.Cache = local
	closeFn := func() {}
	client, err := platformredis.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if client != nil {
		store = cache.NewResilient(cache.NewRedis(client), local, log)
		closeFn = func() { _ = client.Close() }
		log.Info("dashboard cache: redis")
	}

	svc := dashboard.NewService(datasets, auditor,
		dashboard.WithCache(store, cfg.CacheTTL),
		dashboard.WithMetrics(dashboardmetrics.New(reg)),
		dashboard.WithLogger(log),
	)
	return svc, closeFn, nil
}
