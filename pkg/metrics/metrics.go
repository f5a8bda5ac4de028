// Package metrics exposes Prometheus counters for the identity,
// registry and stream-chain operations, built on
// github.com/prometheus/client_golang. Every increment happens
// synchronously at the call site of the operation it counts — no
// goroutines, no timers — consistent with this module's
// single-threaded, synchronous execution model. A caller that doesn't
// want Prometheus wiring can use Disabled(), whose counters are
// allocated but never registered with any collector.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Set bundles the counters this module increments.
type Set struct {
	CardsTotal            prometheus.Counter
	EvolutionsTotal        prometheus.Counter
	RegistryEntriesTotal   *prometheus.CounterVec // labeled by "oper"
	StreamBlocksTotal      prometheus.Counter
	StreamChainRotations   prometheus.Counter
}

// New builds a Set and registers it with reg. Pass nil to skip
// registration (the counters still work, they're simply not exported).
func New(reg prometheus.Registerer) *Set {
	s := &Set{
		CardsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "identity_cards_total",
			Help: "Total number of cards appended across all identities (genesis + evolved).",
		}),
		EvolutionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "identity_evolutions_total",
			Help: "Total number of completed evolve() calls re-enabling an identity.",
		}),
		RegistryEntriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_entries_total",
			Help: "Total number of registry entries saved, labeled by operation.",
		}, []string{"oper"}),
		StreamBlocksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stream_blocks_total",
			Help: "Total number of blocks appended to streams.",
		}),
		StreamChainRotations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stream_chain_rotations_total",
			Help: "Total number of streams appended to a stream chain via master-authorized renew.",
		}),
	}
	if reg != nil {
		reg.MustRegister(s.CardsTotal, s.EvolutionsTotal, s.RegistryEntriesTotal, s.StreamBlocksTotal, s.StreamChainRotations)
	}
	return s
}

// Disabled returns a Set whose counters exist but are never registered
// with any collector, for embedders that don't want Prometheus wiring.
func Disabled() *Set {
	return New(nil)
}
