package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelkehle/aireadiness/internal/readiness"
)

func TestMetricsRecordCascadeOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveTier(readiness.TierPipeline, false, 2*time.Second)
	m.ObserveTier(readiness.TierSynthesized, true, time.Millisecond)
	m.ObserveStageFallback(readiness.StageDiagnostic)
	m.ObserveStageFallback(readiness.StageDiagnostic)
	m.ObservePersistAttempt(false)
	m.ObservePersistAttempt(true)
	m.ObserveGeneration(readiness.TierSynthesized, true, 3*time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.tierAttempts.WithLabelValues("pipeline", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tierAttempts.WithLabelValues("synthesized", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.stageFallbacks.WithLabelValues(readiness.StageDiagnostic)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistAttempts.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("synthesized", "true")))

	n, err := testutil.GatherAndCount(reg, "readiness_generation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTier(readiness.TierMinimal, true, 0)
		m.ObserveStageFallback("x")
		m.ObservePersistAttempt(true)
		m.ObserveGeneration(readiness.TierMinimal, false, 0)
	})
}

func TestSetupTracingWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), "", "readiness")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
