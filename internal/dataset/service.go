package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"enrolsight/pkg/platform/audit"
	"enrolsight/pkg/platform/sentinel"
)

// AuditPort records dataset lifecycle events.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service owns the current Snapshot. Reads are lock-free; a reload swaps the
// snapshot atomically so in-flight requests keep the version they started
// with.
type Service struct {
	source  Source
	current atomic.Pointer[Snapshot]
	logger  *slog.Logger
	auditor AuditPort
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithAuditor emits a dataset_loaded event whenever the version changes.
func WithAuditor(a AuditPort) Option {
	return func(s *Service) { s.auditor = a }
}

// WithClock overrides the load timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service. Call Reload before serving reads.
func NewService(source Source, opts ...Option) *Service {
	s := &Service{
		source: source,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current dataset, or sentinel.ErrUnavailable before
// the first successful load.
func (s *Service) Snapshot(_ context.Context) (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, fmt.Errorf("dataset not loaded: %w", sentinel.ErrUnavailable)
	}
	return snap, nil
}

// Reload reads the source and publishes a new snapshot. On failure the
// previous snapshot stays in place.
func (s *Service) Reload(ctx context.Context) (*Snapshot, error) {
	start := s.now()
	records, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", s.source.Name(), err)
	}
	snap, err := NewSnapshot(records, s.now().UTC())
	if err != nil {
		return nil, err
	}

	previous := s.current.Swap(snap)
	for _, r := range snap.Rejected {
		s.logger.WarnContext(ctx, "dataset record rejected",
			"source", s.source.Name(),
			"index", r.Index,
			"region", r.Region,
			"period", r.Period,
			"reason", r.Reason,
		)
	}
	if len(snap.Records) == 0 {
		s.logger.WarnContext(ctx, "dataset is empty", "source", s.source.Name())
	}

	if previous != nil && previous.Version == snap.Version {
		s.logger.DebugContext(ctx, "dataset unchanged", "version", snap.Version)
		return snap, nil
	}
	s.logger.InfoContext(ctx, "dataset loaded",
		"source", s.source.Name(),
		"version", snap.Version,
		"records", len(snap.Records),
		"rejected", len(snap.Rejected),
		"regions", len(snap.Regions),
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)
	s.emitLoaded(ctx, snap)
	return snap, nil
}

func (s *Service) emitLoaded(ctx context.Context, snap *Snapshot) {
	if s.auditor == nil {
		return
	}
	event := audit.Event{
		Action:    audit.ActionDatasetLoaded,
		Timestamp: snap.LoadedAt,
		Subject:   s.source.Name(),
		Details:   "version=" + snap.Version + " records=" + strconv.Itoa(len(snap.Records)),
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit dataset audit event", "error", err)
	}
}

// Run reloads every interval until ctx is cancelled. Failed reloads are
// logged and retried on the next tick.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.Reload(ctx); err != nil {
				s.logger.ErrorContext(ctx, "dataset reload failed", "error", err)
			}
		}
	}
}
