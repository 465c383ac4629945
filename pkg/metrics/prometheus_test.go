package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordCalculation(true)
	r.RecordCalculation(true)
	r.RecordCalculation(false)
	r.RecordLessonLoad("fs", "fallback")
	r.RecordError("lesson_fetch")
	r.RecordLatency("lesson_load", 0.02)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.calculations.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.calculations.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.lessonLoads.WithLabelValues("fs", "fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("lesson_fetch")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.latency))
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
