package publisher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	audit "enrolsight/pkg/platform/audit"
)

// Metrics counts audit delivery outcomes. A nil *Metrics is a no-op.
type Metrics struct {
	persisted *prometheus.CounterVec
	failed    prometheus.Counter
	fallback  prometheus.Counter
	dropped   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		persisted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enrolsight_audit_events_persisted_total",
			Help: "Audit events written to the primary store",
		}, []string{"category"}),
		failed: f.NewCounter(prometheus.CounterOpts{
			Name: "enrolsight_audit_store_failures_total",
			Help: "Primary audit store write failures",
		}),
		fallback: f.NewCounter(prometheus.CounterOpts{
			Name: "enrolsight_audit_events_fallback_total",
			Help: "Audit events written to the in-memory fallback",
		}),
		dropped: f.NewCounter(prometheus.CounterOpts{
			Name: "enrolsight_audit_events_dropped_total",
			Help: "Audit events dropped because the async buffer was full",
		}),
	}
}

func (m *Metrics) incPersisted(c audit.EventCategory) {
	if m != nil {
		m.persisted.WithLabelValues(string(c)).Inc()
	}
}

func (m *Metrics) incFailed() {
	if m != nil {
		m.failed.Inc()
	}
}

func (m *Metrics) incFallback() {
	if m != nil {
		m.fallback.Inc()
	}
}

func (m *Metrics) incDropped() {
	if m != nil {
		m.dropped.Inc()
	}
}
