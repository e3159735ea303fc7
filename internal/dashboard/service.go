package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"enrolsight/internal/access"
	"enrolsight/internal/analytics"
	"enrolsight/internal/dashboard/metrics"
	"enrolsight/internal/dashboard/ports"
	"enrolsight/internal/dataset"
	dErrors "enrolsight/pkg/domain-errors"
	"enrolsight/pkg/platform/audit"
	"enrolsight/pkg/platform/sentinel"
	"enrolsight/pkg/requestcontext"
)

const tracerName = "enrolsight/internal/dashboard"

// Service composes dashboards from the current dataset snapshot.
type Service struct {
	dataset  ports.DatasetPort
	auditor  ports.AuditPort
	cache    ports.Cache
	cacheTTL time.Duration
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithCache memoizes composed dashboards for ttl.
func WithCache(c ports.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithTracer overrides the global tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func NewService(dataset ports.DatasetPort, auditor ports.AuditPort, opts ...Option) *Service {
	s := &Service{
		dataset: dataset,
		auditor: auditor,
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Views returns the view ids the identity may request on tab.
func (s *Service) Views(_ context.Context, identity access.Identity, tab access.Tab) []access.View {
	return access.PermittedViews(identity.Role, tab)
}

// Compose builds every view permitted for the request's (role, tab) pair.
func (s *Service) Compose(ctx context.Context, req Request) (*Dashboard, error) {
	start := time.Now()
	role := req.Identity.Role
	ctx, span := s.tracer.Start(ctx, "dashboard.Compose", trace.WithAttributes(
		attribute.String("role", string(role)),
		attribute.String("tab", req.Tab.Label()),
	))
	defer span.End()
	defer func() { s.metrics.ObserveCompose(req.Tab, time.Since(start)) }()

	views := access.PermittedViews(role, req.Tab)
	out := &Dashboard{Role: role, Tab: req.Tab, Views: views}

	if !req.Identity.HasAnalytics() {
		out.Profile = profileOf(req.Identity)
		s.metrics.IncrementView(string(access.ViewProfile))
		s.emitComputed(ctx, req.Identity, req.Tab.Label(), views)
		return out, nil
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dataset unavailable")
		return nil, err
	}
	out.DatasetVersion = snap.Version
	span.SetAttributes(attribute.String("dataset.version", snap.Version))

	key := cacheKey(req, snap.Version)
	if cached, ok := s.cached(ctx, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		cached.Tab = req.Tab
		s.emitComputed(ctx, req.Identity, req.Tab.Label(), views)
		return cached, nil
	}

	records, comparable := scope(role, snap, req.Criteria)
	top := clampTop(req.Top)
	for _, view := range views {
		s.buildView(ctx, out, view, viewInput{
			identity:   req.Identity,
			snapshot:   snap,
			records:    records,
			comparable: comparable,
			compareA:   req.CompareA,
			compareB:   req.CompareB,
			top:        top,
		})
	}

	s.store(ctx, key, out)
	s.emitComputed(ctx, req.Identity, req.Tab.Label(), views)
	return out, nil
}

func (s *Service) buildView(ctx context.Context, out *Dashboard, view access.View, in viewInput) {
	_, span := s.tracer.Start(ctx, "dashboard.view", trace.WithAttributes(attribute.String("view", string(view))))
	defer span.End()
	build, ok := viewBuilders[view]
	if !ok {
		return
	}
	build(out, in)
	s.metrics.IncrementView(string(view))
}

// authorize checks that the identity's role grants view on some tab and
// records denials.
func (s *Service) authorize(ctx context.Context, identity access.Identity, view access.View) error {
	if access.Allows(identity.Role, view) {
		return nil
	}
	s.metrics.IncrementDenied(string(identity.Role), string(view))
	s.logger.WarnContext(ctx, "view access denied",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", identity.ID,
		"role", identity.Role,
		"view", view,
	)
	s.emit(ctx, audit.Event{
		UserID:  identity.ID,
		Role:    string(identity.Role),
		Action:  audit.ActionAccessDenied,
		Subject: string(view),
	})
	return dErrors.New(dErrors.CodeForbidden, fmt.Sprintf("role %s may not view %s", identity.Role, view))
}

// prepare authorizes view and returns the gated, filtered records.
func (s *Service) prepare(ctx context.Context, identity access.Identity, view access.View, criteria analytics.Criteria) (*dataset.Snapshot, []analytics.RawRecord, error) {
	if err := s.authorize(ctx, identity, view); err != nil {
		return nil, nil, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	records, _ := scope(identity.Role, snap, criteria)
	s.metrics.IncrementView(string(view))
	s.emitComputed(ctx, identity, string(view), []access.View{view})
	return snap, records, nil
}

func (s *Service) snapshot(ctx context.Context) (*dataset.Snapshot, error) {
	snap, err := s.dataset.Snapshot(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrUnavailable) {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "dataset not loaded")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read dataset")
	}
	return snap, nil
}

func (s *Service) cached(ctx context.Context, key string) (*Dashboard, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementCache("miss")
		} else {
			s.metrics.IncrementCache("error")
			s.logger.WarnContext(ctx, "dashboard cache read failed", "error", err)
		}
		return nil, false
	}
	var d Dashboard
	if err := json.Unmarshal(raw, &d); err != nil {
		s.metrics.IncrementCache("error")
		s.logger.WarnContext(ctx, "dashboard cache entry unreadable", "error", err)
		return nil, false
	}
	s.metrics.IncrementCache("hit")
	return &d, true
}

func (s *Service) store(ctx context.Context, key string, d *Dashboard) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(d)
	if err != nil {
		s.logger.WarnContext(ctx, "dashboard cache encode failed", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "dashboard cache write failed", "error", err)
	}
}

func (s *Service) emitComputed(ctx context.Context, identity access.Identity, subject string, views []access.View) {
	names := make([]string, len(views))
	for i, v := range views {
		names[i] = string(v)
	}
	s.emit(ctx, audit.Event{
		UserID:  identity.ID,
		Role:    string(identity.Role),
		Action:  audit.ActionViewComputed,
		Subject: subject,
		Details: "views=" + strings.Join(names, ","),
	})
}

// emit never fails the caller; audit delivery problems are only logged.
func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"request_id", requestcontext.RequestID(ctx),
			"action", event.Action,
			"error", err,
		)
	}
}

// cacheKey covers every input that changes the composed output. Unknown tabs
// all compose the same views and share one key.
func cacheKey(req Request, version string) string {
	return strings.Join([]string{
		version,
		string(req.Identity.Role),
		req.Tab.Label(),
		strconv.Itoa(req.Criteria.Year),
		req.Criteria.Period,
		req.Criteria.Region,
		req.CompareA,
		req.CompareB,
		strconv.Itoa(clampTop(req.Top)),
	}, "|")
}

func clampTop(n int) int {
	if n <= 0 {
		return DefaultTop
	}
	return min(n, MaxTop)
}
