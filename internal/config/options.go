package config

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/AdeptTravel/peerd/internal/buildinfo"
)

// ParallelismProbe reports host hardware parallelism.  It is consulted
// when the settings file omits core.threads or sets it to zero.
type ParallelismProbe func() int

// HostParallelism is the default probe.
func HostParallelism() int { return runtime.NumCPU() }

type options struct {
	log       *zap.SugaredLogger
	probe     ParallelismProbe
	envPrefix string
	build     buildinfo.Info
}

// Option customises LoadSettings and New.
type Option func(*options)

// WithLogger sets the logger used for load and dump lines.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) { o.log = l }
}

// WithParallelismProbe replaces the host parallelism probe.
func WithParallelismProbe(p ParallelismProbe) Option {
	return func(o *options) { o.probe = p }
}

// WithEnvOverlay merges environment variables with the given prefix over
// the settings file.  "__" separates path components and the prefix is
// stripped, so PEER_HTTP__SERVER__PORT sets http.server.port.
func WithEnvOverlay(prefix string) Option {
	return func(o *options) { o.envPrefix = prefix }
}

// WithBuildInfo sets the metadata printed in the settings dump.
func WithBuildInfo(bi buildinfo.Info) Option {
	return func(o *options) { o.build = bi }
}

func newOptions(opts []Option) options {
	o := options{
		probe: HostParallelism,
		build: buildinfo.Current(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.log == nil {
		o.log = zap.S()
	}
	if o.probe == nil {
		o.probe = HostParallelism
	}
	return o
}

// threads resolves the configured count against the probe.  The result is
// never zero.
func (o options) threads(configured uint) uint {
	if configured != 0 {
		return configured
	}
	if n := o.probe(); n > 0 {
		return uint(n)
	}
	return 1
}
