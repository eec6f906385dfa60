package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/joelkehle/aireadiness/internal/readiness"
)

const namespace = "readiness"

// Metrics implements readiness.Recorder on Prometheus collectors.
type Metrics struct {
	tierAttempts    *prometheus.CounterVec
	tierLatency     *prometheus.HistogramVec
	stageFallbacks  *prometheus.CounterVec
	persistAttempts *prometheus.CounterVec
	generations     *prometheus.CounterVec
	generationTime  prometheus.Histogram
}

var _ readiness.Recorder = (*Metrics)(nil)

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		tierAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cascade",
			Name:      "tier_attempts_total",
			Help:      "Generation tier attempts by tier and outcome.",
		}, []string{"tier", "outcome"}),
		tierLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cascade",
			Name:      "tier_duration_seconds",
			Help:      "Time spent in each generation tier.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		}, []string{"tier"}),
		stageFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_fallbacks_total",
			Help:      "Pipeline stages that returned static defaults.",
		}, []string{"stage"}),
		persistAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "persist_attempts_total",
			Help:      "Durable write attempts by outcome.",
		}, []string{"outcome"}),
		generations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Reports returned to callers by winning tier and persistence.",
		}, []string{"tier", "persisted"}),
		generationTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "End-to-end report generation time.",
			Buckets:   []float64{0.05, 0.5, 1, 5, 15, 30, 60, 120, 240},
		}),
	}
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

func (m *Metrics) ObserveTier(tier readiness.Tier, success bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.tierAttempts.WithLabelValues(string(tier), outcome(success)).Inc()
	m.tierLatency.WithLabelValues(string(tier)).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveStageFallback(stage string) {
	if m == nil {
		return
	}
	m.stageFallbacks.WithLabelValues(stage).Inc()
}

func (m *Metrics) ObservePersistAttempt(success bool) {
	if m == nil {
		return
	}
	m.persistAttempts.WithLabelValues(outcome(success)).Inc()
}

func (m *Metrics) ObserveGeneration(tier readiness.Tier, persisted bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	p := "false"
	if persisted {
		p = "true"
	}
	m.generations.WithLabelValues(string(tier), p).Inc()
	m.generationTime.Observe(elapsed.Seconds())
}
