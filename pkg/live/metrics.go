package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// serverMetrics holds the session-level collectors.
type serverMetrics struct {
	sessionsActive prometheus.Gauge
	sessionsTotal  prometheus.Counter
	framesTotal    *prometheus.CounterVec
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	factory := promauto.With(reg)
	return &serverMetrics{
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "retain",
			Subsystem: "live",
			Name:      "sessions_active",
			Help:      "Number of connected sessions",
		}),
		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "retain",
			Subsystem: "live",
			Name:      "sessions_total",
			Help:      "Total number of sessions opened",
		}),
		framesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retain",
			Subsystem: "live",
			Name:      "frames_received_total",
			Help:      "Total number of frames received by type",
		}, []string{"type"}),
	}
}

func (m *serverMetrics) sessionOpened() {
	if m != nil {
		m.sessionsActive.Inc()
		m.sessionsTotal.Inc()
	}
}

func (m *serverMetrics) sessionClosed() {
	if m != nil {
		m.sessionsActive.Dec()
	}
}

func (m *serverMetrics) frameReceived(typ string) {
	if m != nil {
		m.framesTotal.WithLabelValues(typ).Inc()
	}
}
