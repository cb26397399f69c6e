package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Hydration outcomes.
const (
	HydrationLoaded    = "loaded"
	HydrationEmpty     = "empty"
	HydrationMalformed = "malformed"
	HydrationReadError = "read_error"
)

// StoreMetrics records cart activity and persistence health.
type StoreMetrics struct {
	mutations       *prometheus.CounterVec
	persistFailures prometheus.Counter
	persistDuration prometheus.Histogram
	hydrations      *prometheus.CounterVec
}

// NewStoreMetrics registers the store metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations applied in memory, by operation.",
	}, []string{"op"})
	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Write-through cart persists that failed.",
	})
	persistDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_persist_duration_seconds",
		Help:    "Duration of write-through cart persists.",
		Buckets: prometheus.DefBuckets,
	})
	hydrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_hydrations_total",
		Help: "Cart hydrations at session start, by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(mutations, persistFailures, persistDuration, hydrations)
	return &StoreMetrics{
		mutations:       mutations,
		persistFailures: persistFailures,
		persistDuration: persistDuration,
		hydrations:      hydrations,
	}
}

// IncMutation counts one in-memory cart mutation.
func (m *StoreMetrics) IncMutation(op string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// ObservePersist records a write-through attempt.
func (m *StoreMetrics) ObservePersist(duration time.Duration, err error) {
	if m == nil || m.persistDuration == nil {
		return
	}
	m.persistDuration.Observe(duration.Seconds())
	if err != nil {
		m.persistFailures.Inc()
	}
}

// IncHydration counts a hydration by outcome.
func (m *StoreMetrics) IncHydration(outcome string) {
	if m == nil || m.hydrations == nil {
		return
	}
	m.hydrations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
