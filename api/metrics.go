// Package api provides the Prometheus metrics and the HTTP surface of a
// t-chain node: /metrics, /healthz and the Arrow ledger export.
package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the node.
type Metrics struct {
	// Pool and ledger metrics
	PoolSize    prometheus.Gauge
	BlocksMined prometheus.Counter
	BlockSize   prometheus.Histogram

	// Command metrics
	CommandsTotal   *prometheus.CounterVec
	InvalidCommands *prometheus.CounterVec

	// Network metrics
	PublishFailures prometheus.Counter
	KnownPeers      prometheus.Gauge
}

// NewMetrics creates a Metrics instance registered against reg with the
// given namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PoolSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_size",
			Help:      "Current number of pending transactions in the pool",
		}),
		BlocksMined: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_mined_total",
			Help:      "Total number of blocks appended to the ledger",
		}),
		BlockSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "block_size",
			Help:      "Number of transactions per mined block",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}),

		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total commands handled by source and command",
		}, []string{"source", "command"}),
		InvalidCommands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_commands_total",
			Help:      "Total unrecognized commands by source",
		}, []string{"source"}),

		PublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_failures_total",
			Help:      "Total failed gossip publish attempts",
		}),
		KnownPeers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "known_peers",
			Help:      "Current number of peers registered with the transport",
		}),
	}
}

// RecordBlock records a mined block of the given size.
func (m *Metrics) RecordBlock(size int) {
	m.BlocksMined.Inc()
	m.BlockSize.Observe(float64(size))
}

// RecordCommand records a handled command.
func (m *Metrics) RecordCommand(source, command string) {
	m.CommandsTotal.WithLabelValues(source, command).Inc()
}

// RecordInvalidCommand records an unrecognized command.
func (m *Metrics) RecordInvalidCommand(source string) {
	m.InvalidCommands.WithLabelValues(source).Inc()
}

// UpdatePoolSize updates the pool gauge.
func (m *Metrics) UpdatePoolSize(size int) {
	m.PoolSize.Set(float64(size))
}
