package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"enrolsight/internal/access"
)

// Metrics provides observability for dashboard composition.
type Metrics struct {
	// Compose latency by tab label (known tabs or "other")
	ComposeLatency *prometheus.HistogramVec

	// Views computed by view id
	ViewsComputed *prometheus.CounterVec

	// Requests refused because the role lacks the view
	AccessDenied *prometheus.CounterVec

	// Cache lookups by result: "hit", "miss", "error"
	CacheLookups *prometheus.CounterVec
}

// New registers the dashboard metrics with reg, or the default registerer
// when reg is nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ComposeLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "enrolsight_dashboard_compose_duration_seconds",
			Help:    "Duration of dashboard composition by tab",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"tab"}),

		ViewsComputed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "enrolsight_dashboard_views_computed_total",
			Help: "Total views computed by view id",
		}, []string{"view"}),

		AccessDenied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "enrolsight_dashboard_access_denied_total",
			Help: "Total view requests denied by role",
		}, []string{"role", "view"}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "enrolsight_dashboard_cache_lookups_total",
			Help: "Dashboard cache lookups by result",
		}, []string{"result"}),
	}
}

// ObserveCompose records a composition duration. Unknown tabs share the
// "other" series.
func (m *Metrics) ObserveCompose(tab access.Tab, d time.Duration) {
	if m != nil {
		m.ComposeLatency.WithLabelValues(tab.Label()).Observe(d.Seconds())
	}
}

// IncrementView records a computed view.
func (m *Metrics) IncrementView(view string) {
	if m != nil {
		m.ViewsComputed.WithLabelValues(view).Inc()
	}
}

// IncrementDenied records a refused view request.
func (m *Metrics) IncrementDenied(role, view string) {
	if m != nil {
		m.AccessDenied.WithLabelValues(role, view).Inc()
	}
}

// IncrementCache records a cache lookup result.
func (m *Metrics) IncrementCache(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}
