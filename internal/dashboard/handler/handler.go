package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"enrolsight/internal/access"
	"enrolsight/internal/analytics"
	"enrolsight/internal/dashboard"
	"enrolsight/pkg/platform/audit"
	"enrolsight/pkg/platform/httputil"
	"enrolsight/pkg/requestcontext"
)

// Service defines the dashboard operations exposed over HTTP.
type Service interface {
	Views(ctx context.Context, identity access.Identity, tab access.Tab) []access.View
	Compose(ctx context.Context, req dashboard.Request) (*dashboard.Dashboard, error)
	KPI(ctx context.Context, identity access.Identity, c analytics.Criteria) (dashboard.Result[analytics.KPISummary], error)
	Aggregates(ctx context.Context, identity access.Identity, c analytics.Criteria) (dashboard.Result[[]analytics.RegionAggregate], error)
	Series(ctx context.Context, identity access.Identity, c analytics.Criteria) (dashboard.Result[[]analytics.TimeSeriesPoint], error)
	Ranking(ctx context.Context, identity access.Identity, c analytics.Criteria, measure analytics.Measure, n int) (dashboard.Result[[]analytics.RegionAggregate], error)
	Gap(ctx context.Context, identity access.Identity, c analytics.Criteria, minuend, subtrahend analytics.Measure) (dashboard.Result[*analytics.Gap], error)
	Forecast(ctx context.Context, identity access.Identity, c analytics.Criteria) (dashboard.Result[analytics.ForecastResult], error)
	Compare(ctx context.Context, identity access.Identity, c analytics.Criteria, a, b string) (dashboard.Result[analytics.Comparison], error)
	Regions(ctx context.Context, identity access.Identity) (dashboard.Result[[]string], error)
	ActivityLog(ctx context.Context, identity access.Identity, limit int) ([]audit.Event, error)
	RecentActivity(ctx context.Context, identity access.Identity, limit int) ([]audit.Event, error)
}

// Handler wires dashboard endpoints to the dashboard service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a dashboard handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the dashboard endpoints. Callers mount the router behind
// authentication.
func (h *Handler) Register(r chi.Router) {
	r.Get("/auth/me", h.HandleMe)
	r.Get("/views", h.HandleViews)
	r.Get("/dashboard", h.HandleDashboard)
	r.Get("/logs", h.HandleLogs)
	r.Get("/admin/logs", h.HandleAdminLogs)
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/kpi", h.HandleKPI)
		r.Get("/aggregates", h.HandleAggregates)
		r.Get("/series", h.HandleSeries)
		r.Get("/ranking", h.HandleRanking)
		r.Get("/gap", h.HandleGap)
		r.Get("/forecast", h.HandleForecast)
		r.Get("/compare", h.HandleCompare)
		r.Get("/regions", h.HandleRegions)
	})
}

// HandleMe handles GET /auth/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MeResponse{ID: identity.ID.String(), Name: identity.Name, Role: string(identity.Role)})
}

// HandleViews handles GET /views?tab=.
func (h *Handler) HandleViews(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	tab := access.ParseTab(r.URL.Query().Get("tab"))
	views := h.service.Views(r.Context(), identity, tab)
	httputil.WriteJSON(w, http.StatusOK, ViewsResponse{Role: string(identity.Role), Tab: string(tab), Views: views})
}

// HandleDashboard handles GET /dashboard.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	req, err := parseDashboardRequest(r.URL.Query())
	if err != nil {
		h.fail(w, r, "invalid dashboard request", err)
		return
	}
	req.Identity = identity

	result, err := h.service.Compose(ctx, req)
	if err != nil {
		h.fail(w, r, "dashboard composition failed", err)
		return
	}

	h.logger.InfoContext(ctx, "dashboard composed",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", identity.ID,
		"role", identity.Role,
		"tab", req.Tab,
		"views", len(result.Views),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleLogs handles GET /logs?limit=.
func (h *Handler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	limit, err := intParam(r.URL.Query(), "limit", audit.DefaultListLimit)
	if err != nil {
		h.fail(w, r, "invalid logs request", err)
		return
	}
	events, err := h.service.ActivityLog(r.Context(), identity, limit)
	if err != nil {
		h.fail(w, r, "activity log read failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromEvents(events))
}

// HandleAdminLogs handles GET /admin/logs?limit=, the newest events across
// all users. The service refuses non-admin callers.
func (h *Handler) HandleAdminLogs(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	limit, err := intParam(r.URL.Query(), "limit", audit.DefaultListLimit)
	if err != nil {
		h.fail(w, r, "invalid logs request", err)
		return
	}
	events, err := h.service.RecentActivity(r.Context(), identity, limit)
	if err != nil {
		h.fail(w, r, "activity log read failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromEvents(events))
}

func (h *Handler) HandleKPI(w http.ResponseWriter, r *http.Request) {
	serveSeries(h, w, r, h.service.KPI)
}

func (h *Handler) HandleAggregates(w http.ResponseWriter, r *http.Request) {
	serveSeries(h, w, r, h.service.Aggregates)
}

func (h *Handler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	serveSeries(h, w, r, h.service.Series)
}

func (h *Handler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	serveSeries(h, w, r, h.service.Forecast)
}

// HandleRanking handles GET /analytics/ranking?measure=&n=. An absent n
// means DefaultTop; n=0 returns no rows; n above MaxTop is rejected.
func (h *Handler) HandleRanking(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	measure, err := measureParam(q, "measure", analytics.MeasureEnrolment)
	if err != nil {
		h.fail(w, r, "invalid ranking request", err)
		return
	}
	n, err := boundedIntParam(q, "n", dashboard.DefaultTop, dashboard.MaxTop)
	if err != nil {
		h.fail(w, r, "invalid ranking request", err)
		return
	}
	serveSeries(h, w, r, func(ctx context.Context, id access.Identity, c analytics.Criteria) (dashboard.Result[[]analytics.RegionAggregate], error) {
		return h.service.Ranking(ctx, id, c, measure, n)
	})
}

// HandleGap handles GET /analytics/gap?minuend=&subtrahend=.
func (h *Handler) HandleGap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minuend, err := measureParam(q, "minuend", analytics.MeasureChildLagged)
	if err != nil {
		h.fail(w, r, "invalid gap request", err)
		return
	}
	subtrahend, err := measureParam(q, "subtrahend", analytics.MeasureBiometricUpdates)
	if err != nil {
		h.fail(w, r, "invalid gap request", err)
		return
	}
	serveSeries(h, w, r, func(ctx context.Context, id access.Identity, c analytics.Criteria) (dashboard.Result[*analytics.Gap], error) {
		return h.service.Gap(ctx, id, c, minuend, subtrahend)
	})
}

// HandleCompare handles GET /analytics/compare?a=&b=.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, b := q.Get("a"), q.Get("b")
	serveSeries(h, w, r, func(ctx context.Context, id access.Identity, c analytics.Criteria) (dashboard.Result[analytics.Comparison], error) {
		return h.service.Compare(ctx, id, c, a, b)
	})
}

func (h *Handler) HandleRegions(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	result, err := h.service.Regions(r.Context(), identity)
	if err != nil {
		h.fail(w, r, "region listing failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// serveSeries runs the shared identity, criteria, compute and write steps of
// the per-series endpoints.
func serveSeries[T any](h *Handler, w http.ResponseWriter, r *http.Request, compute func(context.Context, access.Identity, analytics.Criteria) (dashboard.Result[T], error)) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		h.fail(w, r, "invalid analytics request", err)
		return
	}
	result, err := compute(r.Context(), identity, criteria)
	if err != nil {
		h.fail(w, r, "analytics request failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"path", r.URL.Path,
		"error", err,
	)
	httputil.WriteError(w, err)
}
