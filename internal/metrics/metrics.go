// Package metrics holds Prometheus instruments for configuration loading.
// All collectors are registered with the global registry, so serving
// promhttp.Handler() in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Load stages used as the "stage" label on ConfigLoadErrorsTotal.
const (
	StageSettings   = "settings"
	StageTopology   = "topology"
	StageValidation = "validation"
)

var (
	ConfigLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "peer_config_load_total",
			Help: "Cumulative number of configurations successfully resolved.",
		})

	ConfigLoadErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peer_config_load_errors_total",
			Help: "Cumulative number of configuration load failures by stage.",
		}, []string{"stage"})

	TopologyPeers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "peer_topology_peers",
			Help: "Number of peer endpoints in the resolved network topology.",
		})

	RuntimeThreads = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "peer_runtime_threads",
			Help: "Resolved worker thread count.",
		})

	RuntimeThreadQueueSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "peer_runtime_thread_queue_size",
			Help: "Resolved per-thread queue size.",
		})
)

func init() {
	prometheus.MustRegister(
		ConfigLoadTotal,
		ConfigLoadErrorsTotal,
		TopologyPeers,
		RuntimeThreads,
		RuntimeThreadQueueSize,
	)
}
