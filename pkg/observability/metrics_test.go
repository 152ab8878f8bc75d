package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveSample(t *testing.T) {
	m := NewMetrics("test")

	m.ObserveSample("cooldown")
	m.ObserveSample("cooldown")
	m.ObserveSample("drawn")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.samplesTotal.WithLabelValues("cooldown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.samplesTotal.WithLabelValues("drawn")))
}

func TestMetrics_ObserveGraphQuery(t *testing.T) {
	m := NewMetrics("test")

	m.ObserveGraphQuery("traverse", "ok")
	m.ObserveGraphQuery("traverse", "error")
	m.ObserveGraphQuery("traverse", "ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.graphQueries.WithLabelValues("traverse", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.graphQueries.WithLabelValues("traverse", "error")))
}

func TestMetrics_ObserveRequest(t *testing.T) {
	m := NewMetrics("test")

	m.ObserveRequest("GET", "/api/v1/media", 200, 25*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/v1/media", "200")))
}
