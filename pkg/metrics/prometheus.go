package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ProbabilityPit/internal/domain/repository"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	calculations *prometheus.CounterVec
	lessonLoads  *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// New registers the domain metrics on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		calculations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "probabilitypit_risk_calculations_total",
				Help: "Risk calculations performed, by profitability verdict",
			},
			[]string{"profitable"},
		),
		lessonLoads: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "probabilitypit_lesson_loads_total",
				Help: "Lesson loads by content source and result (hit, fetched, fallback)",
			},
			[]string{"source", "result"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "probabilitypit_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "probabilitypit_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordCalculation counts one risk calculation.
func (r *Recorder) RecordCalculation(profitable bool) {
	r.calculations.WithLabelValues(strconv.FormatBool(profitable)).Inc()
}

// RecordLessonLoad counts one lesson load.
func (r *Recorder) RecordLessonLoad(source, result string) {
	r.lessonLoads.WithLabelValues(source, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

var _ repository.Metrics = (*Recorder)(nil)
