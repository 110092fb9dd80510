package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheus_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg, "test")

	m.RecordLocationUpdate("success")
	m.RecordLocationUpdate("success")
	m.RecordRideTransition("confirmed")
	m.RecordReferral("duplicate")
	m.IncEventsProcessed("geo-index", "failure")
	m.IncDuplicateEvent("geo-index")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.locationUpdates.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rideTransitions.WithLabelValues("confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.referrals.WithLabelValues("duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsProcessed.WithLabelValues("geo-index", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.duplicateEvents.WithLabelValues("geo-index")))
}

func TestPrometheus_UseCaseExecution(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg, "test")

	m.RecordUseCaseExecution("UpdateBid", true, 20*time.Millisecond)
	m.RecordUseCaseExecution("UpdateBid", false, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.useCaseTotal.WithLabelValues("UpdateBid", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.useCaseTotal.WithLabelValues("UpdateBid", "failure")))
}
