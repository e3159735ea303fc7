package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"enrolsight/pkg/platform/circuit"
	"enrolsight/pkg/platform/sentinel"
)

// Backend is a shared cache such as Redis.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Resilient fronts a shared backend with an in-process fallback. Every call
// still tries the backend so the breaker can observe recovery; backend
// failures are served from the fallback instead of surfacing to callers.
type Resilient struct {
	primary  Backend
	fallback *Memory
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewResilient(primary Backend, fallback *Memory, logger *slog.Logger) *Resilient {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resilient{
		primary:  primary,
		fallback: fallback,
		breaker:  circuit.New("dashboard-cache", circuit.WithFailureThreshold(3), circuit.WithSuccessThreshold(2)),
		logger:   logger,
	}
}

// Degraded reports whether the backend breaker is open.
func (r *Resilient) Degraded() bool {
	return r.breaker.IsOpen()
}

func (r *Resilient) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.primary.Get(ctx, key)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		r.recordFailure(ctx, err)
		return r.fallback.Get(ctx, key)
	}
	// A miss while still recovering may have been written to the fallback.
	if usePrimary := r.recordSuccess(ctx); err != nil && !usePrimary {
		return r.fallback.Get(ctx, key)
	}
	return value, err
}

func (r *Resilient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if r.breaker.IsOpen() {
		_ = r.fallback.Set(ctx, key, value, ttl)
	}
	if err := r.primary.Set(ctx, key, value, ttl); err != nil {
		r.recordFailure(ctx, err)
		return r.fallback.Set(ctx, key, value, ttl)
	}
	r.recordSuccess(ctx)
	return nil
}

func (r *Resilient) recordFailure(ctx context.Context, err error) {
	if _, change := r.breaker.RecordFailure(); change.Opened {
		r.logger.WarnContext(ctx, "dashboard cache circuit opened", "breaker", r.breaker.Name(), "error", err)
	}
}

func (r *Resilient) recordSuccess(ctx context.Context) bool {
	usePrimary, change := r.breaker.RecordSuccess()
	if change.Closed {
		r.logger.InfoContext(ctx, "dashboard cache circuit closed", "breaker", r.breaker.Name())
	}
	return usePrimary
}
