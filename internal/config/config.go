// internal/config/config.go
//
// Root configuration aggregate.
//
// Context
// -------
// `New()` is the only way to obtain a `*Config`.  It loads the settings
// file, then the topology file, then checks the merged result:
//
//  1. stats url must be set,
//  2. network name must be non-empty,
//  3. the peer list must be non-empty.
//
// The checks run in that order and the first failure is returned.  On any
// error no `*Config` is returned.
//
// After `New()` returns, nothing writes to the value again.  Getters return
// copies, so any number of goroutines may read it without locking.
package config

import (
	"fmt"
	"time"

	"github.com/AdeptTravel/peerd/internal/metrics"
	"github.com/AdeptTravel/peerd/internal/network"
)

// Config is the resolved, frozen process configuration.
type Config struct {
	settings Settings
	topology network.Topology
}

// New loads settingsPath and topologyPath and validates the result.
func New(settingsPath, topologyPath string, opts ...Option) (*Config, error) {
	o := newOptions(opts)

	settings, err := LoadSettings(settingsPath, opts...)
	if err != nil {
		metrics.ConfigLoadErrorsTotal.WithLabelValues(metrics.StageSettings).Inc()
		return nil, err
	}

	topo, err := network.Load(topologyPath, o.log)
	if err != nil {
		metrics.ConfigLoadErrorsTotal.WithLabelValues(metrics.StageTopology).Inc()
		return nil, topologyError(err)
	}

	if err := validate(settingsPath, topologyPath, settings, topo); err != nil {
		metrics.ConfigLoadErrorsTotal.WithLabelValues(metrics.StageValidation).Inc()
		o.log.Errorw("config validation failed", "err", err)
		return nil, err
	}

	cfg := &Config{settings: settings, topology: topo.Clone()}

	metrics.ConfigLoadTotal.Inc()
	metrics.TopologyPeers.Set(float64(len(topo.Peers)))
	metrics.RuntimeThreads.Set(float64(settings.Runtime.Threads))
	metrics.RuntimeThreadQueueSize.Set(float64(settings.Runtime.ThreadQueueSize))

	o.log.Infow("config loaded",
		"network", topo.Name,
		"peers", len(topo.Peers),
		"listen", fmt.Sprintf("%s:%d", settings.HTTPServer.DisplayIP(), settings.HTTPServer.BindPort),
	)
	return cfg, nil
}

func validate(settingsPath, topologyPath string, s Settings, t network.Topology) error {
	if s.Stats.URL == "" {
		return fmt.Errorf("config %s: %w", settingsPath, ErrStatsURLNotSet)
	}
	if t.Name == "" {
		return fmt.Errorf("network %s: %w", topologyPath, ErrNetworkNameEmpty)
	}
	if len(t.Peers) == 0 {
		return fmt.Errorf("network %s: %w", topologyPath, ErrNetworkNodesEmpty)
	}
	return nil
}

/*──────────────────────────── accessors ───────────────────────────────────*/

// Settings returns a copy of the whole settings bundle.
func (c *Config) Settings() Settings { return c.settings }

func (c *Config) Runtime() RuntimeSettings       { return c.settings.Runtime }
func (c *Config) Stats() StatsSettings           { return c.settings.Stats }
func (c *Config) HTTPServer() HTTPServerSettings { return c.settings.HTTPServer }
func (c *Config) HTTPClient() HTTPClientSettings { return c.settings.HTTPClient }

// Network returns a copy of the topology; callers may modify it freely.
func (c *Config) Network() network.Topology { return c.topology.Clone() }

func (c *Config) NetworkName() string { return c.topology.Name }

// Peers returns a copy of the peer list in file order.
func (c *Config) Peers() []network.Endpoint { return c.topology.Clone().Peers }

// IP is the raw http.server.ip value; empty means all interfaces.
func (c *Config) IP() string   { return c.settings.HTTPServer.BindIP }
func (c *Config) Port() uint16 { return c.settings.HTTPServer.BindPort }

func (c *Config) ThreadsCount() uint           { return c.settings.Runtime.Threads }
func (c *Config) ThreadQueueSize() int64       { return c.settings.Runtime.ThreadQueueSize }
func (c *Config) ReqsDumpOK() bool             { return c.settings.Runtime.DumpRequestsOK }
func (c *Config) ReqsDumpErr() bool            { return c.settings.Runtime.DumpRequestsErr }
func (c *Config) StatsURL() string             { return c.settings.Stats.URL }
func (c *Config) StatsInterval() time.Duration { return c.settings.Stats.Interval }
func (c *Config) StatsDumpStdout() bool        { return c.settings.Stats.DumpToStdout }
func (c *Config) StatsSend() bool              { return c.settings.Stats.SendEnabled }
func (c *Config) HTTPPostRetries() uint        { return c.settings.HTTPClient.PostRetries }
