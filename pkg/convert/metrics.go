package convert

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts conversion work on a private registry, so embedding
// programs can expose them without colliding with the default registry.
// A nil *Metrics is valid and counts nothing.
type Metrics struct {
	registry   *prometheus.Registry
	structures *prometheus.CounterVec
	policies   prometheus.Counter
	externals  prometheus.Counter
	failures   prometheus.Counter
}

// NewMetrics builds a metrics set on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		structures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "angler",
			Subsystem: "convert",
			Name:      "structures_total",
			Help:      "Structure declarations converted, by structure type.",
		}, []string{"type"}),
		policies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "angler",
			Subsystem: "convert",
			Name:      "policies_total",
			Help:      "Routing policies recompiled into functions.",
		}),
		externals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "angler",
			Subsystem: "convert",
			Name:      "external_peers_total",
			Help:      "Distinct external BGP peers discovered.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "angler",
			Subsystem: "convert",
			Name:      "failures_total",
			Help:      "Conversions aborted on an unsupported construct or bad input.",
		}),
	}
	m.registry.MustRegister(m.structures, m.policies, m.externals, m.failures)
	return m
}

// Registry returns the registry the counters live on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) structureConverted(ty string) {
	if m != nil {
		m.structures.WithLabelValues(ty).Inc()
	}
}

func (m *Metrics) policyConverted() {
	if m != nil {
		m.policies.Inc()
	}
}

func (m *Metrics) externalPeer() {
	if m != nil {
		m.externals.Inc()
	}
}

func (m *Metrics) failure() {
	if m != nil {
		m.failures.Inc()
	}
}
