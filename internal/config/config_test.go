// internal/config/config_test.go
//
// Unit-tests for the Config aggregate: merge, validation order, and the
// frozen read-only contract.
//
// Run: go test ./internal/config -race -v

package config

import (
	"net/netip"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdeptTravel/peerd/internal/metrics"
	"github.com/AdeptTravel/peerd/internal/network"
)

const (
	validSettings = `
core:
  threads: 4
  queue_size: 100
stats:
  url: "http://stats.example:8000/push"
http:
  server:
    ip: "10.1.1.1"
    port: 9999
`
	validNetwork = "net-main\n206.189.11.155 9999 256\n206.189.11.153 9999 256\n"
)

func newConfig(t *testing.T, settings, topology string) (*Config, error) {
	t.Helper()
	sp := writeTemp(t, "settings.yaml", settings)
	np := writeTemp(t, "network", topology)
	return New(sp, np, quiet(), probe(2))
}

func TestNew_Valid(t *testing.T) {
	cfg, err := newConfig(t, validSettings, validNetwork)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "net-main", cfg.NetworkName())
	assert.Equal(t, []network.Endpoint{
		network.NewEndpoint(netip.MustParseAddr("206.189.11.155"), 9999),
		network.NewEndpoint(netip.MustParseAddr("206.189.11.153"), 9999),
	}, cfg.Peers())

	assert.Equal(t, uint(4), cfg.ThreadsCount())
	assert.Equal(t, int64(25), cfg.ThreadQueueSize())
	assert.Equal(t, "http://stats.example:8000/push", cfg.StatsURL())
	assert.Equal(t, "10.1.1.1", cfg.IP())
	assert.Equal(t, uint16(9999), cfg.Port())
	assert.Equal(t, uint(1), cfg.HTTPPostRetries())
	assert.True(t, cfg.StatsSend())
	assert.False(t, cfg.StatsDumpStdout())
	assert.False(t, cfg.ReqsDumpOK())
	assert.False(t, cfg.ReqsDumpErr())
	assert.Equal(t, cfg.Settings().Stats.Interval, cfg.StatsInterval())
	assert.Equal(t, cfg.Settings().Runtime, cfg.Runtime())
	assert.Equal(t, cfg.Settings().Stats, cfg.Stats())
	assert.Equal(t, cfg.Settings().HTTPServer, cfg.HTTPServer())
	assert.Equal(t, cfg.Settings().HTTPClient, cfg.HTTPClient())
}

func TestNew_UpdatesMetrics(t *testing.T) {
	before := testutil.ToFloat64(metrics.ConfigLoadTotal)

	_, err := newConfig(t, validSettings, validNetwork)
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ConfigLoadTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.TopologyPeers))
	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.RuntimeThreads))
	assert.Equal(t, float64(25), testutil.ToFloat64(metrics.RuntimeThreadQueueSize))
}

// ── validation ────────────────────────────────────────────────────────────────

func TestNew_StatsURLNotSet(t *testing.T) {
	before := testutil.ToFloat64(metrics.ConfigLoadErrorsTotal.WithLabelValues(metrics.StageValidation))

	cfg, err := newConfig(t, "core: {threads: 1}\n", validNetwork)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatsURLNotSet)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "stats url not set")
	assert.Contains(t, err.Error(), "settings.yaml")

	after := testutil.ToFloat64(metrics.ConfigLoadErrorsTotal.WithLabelValues(metrics.StageValidation))
	assert.Equal(t, before+1, after)
}

func TestNew_NetworkNodesEmpty(t *testing.T) {
	cfg, err := newConfig(t, validSettings, "net-main\nnot-an-ip 9999\n10.0.0.1 notaport\n")
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrNetworkNodesEmpty)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "network nodes empty")
}

func TestNew_NetworkNameEmpty(t *testing.T) {
	cfg, err := newConfig(t, validSettings, "")
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrNetworkNameEmpty)
	assert.NotErrorIs(t, err, ErrNetworkNodesEmpty)
}

// TestNew_ValidationOrder verifies the stats check runs before the network
// checks, and the name check before the nodes check.
func TestNew_ValidationOrder(t *testing.T) {
	_, err := newConfig(t, "core: {}\n", "")
	assert.ErrorIs(t, err, ErrStatsURLNotSet)

	_, err = newConfig(t, validSettings, "\n\n")
	assert.ErrorIs(t, err, ErrNetworkNameEmpty)
}

func TestNew_SettingsErrorsPropagate(t *testing.T) {
	_, err := newConfig(t, "", validNetwork)
	assert.ErrorIs(t, err, ErrIO)

	_, err = newConfig(t, "core: {threads: lots}\n", validNetwork)
	assert.ErrorIs(t, err, ErrParse)
}

func TestNew_TopologyMissing(t *testing.T) {
	sp := writeTemp(t, "settings.yaml", validSettings)

	cfg, err := New(sp, sp+".absent", quiet(), probe(1))
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, network.ErrIO)
	assert.Contains(t, err.Error(), sp+".absent")
}

// ── frozen contract ──────────────────────────────────────────────────────────

func TestNew_Idempotent(t *testing.T) {
	sp := writeTemp(t, "settings.yaml", validSettings)
	np := writeTemp(t, "network", validNetwork)

	a, err := New(sp, np, quiet(), probe(3))
	require.NoError(t, err)
	b, err := New(sp, np, quiet(), probe(3))
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, a, b)
}

func TestConfig_AccessorsDoNotLeakState(t *testing.T) {
	cfg, err := newConfig(t, validSettings, validNetwork)
	require.NoError(t, err)

	peers := cfg.Peers()
	peers[0] = network.Endpoint{}
	_ = append(peers[:1], network.Endpoint{Port: 1})

	topo := cfg.Network()
	topo.Name = "changed"
	topo.Peers[1].Port = 1

	s := cfg.Settings()
	s.Stats.URL = ""

	assert.Equal(t, "net-main", cfg.NetworkName())
	assert.Equal(t, uint16(9999), cfg.Peers()[0].Port)
	assert.Equal(t, uint16(9999), cfg.Peers()[1].Port)
	assert.Equal(t, "http://stats.example:8000/push", cfg.StatsURL())
}

func TestConfig_ConcurrentReads(t *testing.T) {
	cfg, err := newConfig(t, validSettings, validNetwork)
	require.NoError(t, err)
	want := cfg.Settings()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if cfg.Settings() != want || len(cfg.Peers()) != 2 {
					t.Error("config changed under concurrent reads")
					return
				}
			}
		}()
	}
	wg.Wait()
}
