// Package monitoring exposes Prometheus metrics for the host/engine bridge.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts bridge traffic. One collector per registry; pass a fresh
// Registerer when running more than one reader in-process.
type Metrics struct {
	CommandsSent    *prometheus.CounterVec
	CommandsDropped *prometheus.CounterVec
	InjectFailures  *prometheus.CounterVec
	EncodeFailures  prometheus.Counter
	MessagesTotal   *prometheus.CounterVec
	SearchesIssued  prometheus.Counter
	StaleSearches   prometheus.Counter
}

// NewMetrics registers the bridge collectors with reg. A nil reg uses the
// default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		CommandsSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_bridge_commands_sent_total",
				Help: "Commands injected into the rendering engine",
			},
			[]string{"command"},
		),
		CommandsDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_bridge_commands_dropped_total",
				Help: "Commands dropped because no engine channel was attached",
			},
			[]string{"command"},
		),
		InjectFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_bridge_inject_failures_total",
				Help: "Commands whose channel injection returned an error",
			},
			[]string{"command"},
		),
		EncodeFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "folio_bridge_encode_failures_total",
				Help: "Commands that failed argument serialization",
			},
		),
		MessagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_bridge_messages_total",
				Help: "Inbound engine messages by type and disposition",
			},
			[]string{"type", "disposition"},
		),
		SearchesIssued: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "folio_bridge_searches_issued_total",
				Help: "Full-text search commands issued",
			},
		),
		StaleSearches: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "folio_bridge_searches_stale_total",
				Help: "Search results dropped for a superseded correlation token",
			},
		),
	}
}
