package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "probabilitypit",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of JSON API endpoints",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"endpoint"},
	)

	APIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "probabilitypit",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by JSON API endpoint and code",
		},
		[]string{"endpoint", "code"},
	)

	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "probabilitypit",
			Subsystem: "api",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	WizardSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "probabilitypit",
			Subsystem: "ws",
			Name:      "wizard_sessions",
			Help:      "Open websocket wizard sessions",
		},
	)
)

// Register adds the API collectors to the default registry once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(APILatency, APIErrors, RateLimited, WizardSessions)
	})
}
