// internal/config/model.go
//
// Typed configuration model for the peer process.
//
// Context
// -------
// Two shapes live here:
//
//   - fileSettings mirrors the on-disk settings tree key for key, using
//     the raw units of the file (seconds, milliseconds, byte counts).  It is
//     what koanf unmarshals into.
//   - Settings is the resolved bundle handed to the rest of the process,
//     with durations as time.Duration and derived fields filled in.
//
// Notes
// -----
//   - Struct tags use `koanf:"…"`.  Koanf ignores `yaml` tags.
//   - `reponse_timeout_ms` keeps its historical spelling; deployed
//     settings files depend on it.
//   - Raw numbers are int64 so negative input is caught by the validator
//     instead of wrapping around inside an unsigned field.

package config

import "time"

//
// Resolved sections
//

// RuntimeSettings holds the `core` section.
type RuntimeSettings struct {
	Threads         uint
	DumpRequestsOK  bool
	DumpRequestsErr bool
	QueueSizeTotal  int64
	// ThreadQueueSize is QueueSizeTotal / Threads when queue_size is set,
	// otherwise zero.
	ThreadQueueSize int64
}

// StatsSettings holds the `stats` section.
type StatsSettings struct {
	Interval     time.Duration
	URL          string
	DumpToStdout bool
	SendEnabled  bool
}

// HTTPServerSettings holds the `http.server` section.
type HTTPServerSettings struct {
	// BindIP is empty for "all interfaces".
	BindIP           string
	BindPort         uint16
	MaxConnections   uint
	Backlog          uint
	KeepAliveTimeout time.Duration
	RequestMaxSize   uint
	BufferSize       uint
}

// DisplayIP returns BindIP, or "0.0.0.0" when it is empty.
func (s HTTPServerSettings) DisplayIP() string {
	if s.BindIP == "" {
		return "0.0.0.0"
	}
	return s.BindIP
}

// HTTPClientSettings holds the `http.client` section.
type HTTPClientSettings struct {
	ConnectionsPerIP   uint
	PoolMaxConnections uint
	ResponseTimeout    time.Duration
	PostRetries        uint
	BodyMaxSize        uint
}

// Settings is the resolved settings bundle.  It holds only scalar fields,
// so a copy shares nothing with the original.
type Settings struct {
	Runtime    RuntimeSettings
	Stats      StatsSettings
	HTTPServer HTTPServerSettings
	HTTPClient HTTPClientSettings
}

//
// Defaults
//

const (
	defaultStatsInterval    = time.Second
	defaultBindPort         = 8080
	defaultMaxConnections   = 10000
	defaultBacklog          = 1024
	defaultKeepAliveTimeout = 60 * time.Second
	defaultMessageMaxSize   = 1 << 20
	defaultConnsPerIP       = 16
	defaultPoolMaxConns     = 1024
	defaultResponseTimeout  = 10 * time.Second
	defaultPostRetries      = 1
)

//
// On-disk shape
//

type fileCore struct {
	Threads     int64 `koanf:"threads"      validate:"min=0"`
	ReqsDumpOK  bool  `koanf:"reqs_dump_ok"`
	ReqsDumpErr bool  `koanf:"reqs_dump_err"`
	QueueSize   int64 `koanf:"queue_size"   validate:"min=0"`
}

type fileStats struct {
	IntervalSeconds int64  `koanf:"interval_seconds" validate:"min=0"`
	URL             string `koanf:"url"`
	DumpStdout      bool   `koanf:"dump_stdout"`
	Send            bool   `koanf:"send"`
}

type fileHTTPServer struct {
	IP                      string `koanf:"ip"`
	Port                    int64  `koanf:"port"                       validate:"min=0,max=65535"`
	MaxConns                int64  `koanf:"max_conns"                  validate:"min=0"`
	Backlog                 int64  `koanf:"backlog"                    validate:"min=0"`
	KeepAliveTimeoutSeconds int64  `koanf:"keep_alive_timeout_seconds" validate:"min=0"`
	MessageMaxSize          int64  `koanf:"message_max_size"           validate:"min=0"`
}

type fileHTTPClient struct {
	ConnsPerIP        int64 `koanf:"conns_per_ip"       validate:"min=0"`
	PoolMaxConns      int64 `koanf:"pool_max_conns"     validate:"min=0"`
	ResponseTimeoutMs int64 `koanf:"reponse_timeout_ms" validate:"min=0"`
	Retries           int64 `koanf:"retries"            validate:"min=0"`
	MessageMaxSize    int64 `koanf:"message_max_size"   validate:"min=0"`
}

type fileHTTP struct {
	Server fileHTTPServer `koanf:"server"`
	Client fileHTTPClient `koanf:"client"`
}

// fileSettings is the settings tree as written on disk.
type fileSettings struct {
	Core  fileCore  `koanf:"core"`
	Stats fileStats `koanf:"stats"`
	HTTP  fileHTTP  `koanf:"http"`
}

// defaultFileSettings seeds the tree before unmarshal; keys absent from the
// file keep these values.  Threads stays zero and is resolved by the probe.
func defaultFileSettings() fileSettings {
	return fileSettings{
		Stats: fileStats{
			IntervalSeconds: int64(defaultStatsInterval / time.Second),
			Send:            true,
		},
		HTTP: fileHTTP{
			Server: fileHTTPServer{
				Port:                    defaultBindPort,
				MaxConns:                defaultMaxConnections,
				Backlog:                 defaultBacklog,
				KeepAliveTimeoutSeconds: int64(defaultKeepAliveTimeout / time.Second),
				MessageMaxSize:          defaultMessageMaxSize,
			},
			Client: fileHTTPClient{
				ConnsPerIP:        defaultConnsPerIP,
				PoolMaxConns:      defaultPoolMaxConns,
				ResponseTimeoutMs: defaultResponseTimeout.Milliseconds(),
				Retries:           defaultPostRetries,
				MessageMaxSize:    defaultMessageMaxSize,
			},
		},
	}
}

// resolve converts the raw tree into Settings.  threads must already be
// the final, non-zero thread count.
func (f fileSettings) resolve(threads uint, queueSizeSet bool) Settings {
	rt := RuntimeSettings{
		Threads:         threads,
		DumpRequestsOK:  f.Core.ReqsDumpOK,
		DumpRequestsErr: f.Core.ReqsDumpErr,
	}
	if queueSizeSet {
		rt.QueueSizeTotal = f.Core.QueueSize
		rt.ThreadQueueSize = f.Core.QueueSize / int64(threads)
	}

	return Settings{
		Runtime: rt,
		Stats: StatsSettings{
			Interval:     time.Duration(f.Stats.IntervalSeconds) * time.Second,
			URL:          f.Stats.URL,
			DumpToStdout: f.Stats.DumpStdout,
			SendEnabled:  f.Stats.Send,
		},
		HTTPServer: HTTPServerSettings{
			BindIP:           f.HTTP.Server.IP,
			BindPort:         uint16(f.HTTP.Server.Port),
			MaxConnections:   uint(f.HTTP.Server.MaxConns),
			Backlog:          uint(f.HTTP.Server.Backlog),
			KeepAliveTimeout: time.Duration(f.HTTP.Server.KeepAliveTimeoutSeconds) * time.Second,
			RequestMaxSize:   uint(f.HTTP.Server.MessageMaxSize),
			BufferSize:       uint(f.HTTP.Server.MessageMaxSize),
		},
		HTTPClient: HTTPClientSettings{
			ConnectionsPerIP:   uint(f.HTTP.Client.ConnsPerIP),
			PoolMaxConnections: uint(f.HTTP.Client.PoolMaxConns),
			ResponseTimeout:    time.Duration(f.HTTP.Client.ResponseTimeoutMs) * time.Millisecond,
			PostRetries:        uint(f.HTTP.Client.Retries),
			BodyMaxSize:        uint(f.HTTP.Client.MessageMaxSize),
		},
	}
}
