package config

import (
	"go.uber.org/zap"

	"github.com/AdeptTravel/peerd/internal/buildinfo"
)

// dumpSettings writes every resolved field at INFO, one line per section,
// using the key names of the settings file.
func dumpSettings(log *zap.SugaredLogger, bi buildinfo.Info, s Settings) {
	log.Infow("peer build",
		"version", bi.Version,
		"date", bi.Date,
		"commit", bi.Commit,
	)
	log.Infow("tls library", "version", bi.TLS)

	log.Infow("config dump: core",
		"threads", s.Runtime.Threads,
		"reqs_dump_ok", s.Runtime.DumpRequestsOK,
		"reqs_dump_err", s.Runtime.DumpRequestsErr,
		"queue_size", s.Runtime.QueueSizeTotal,
		"thread_queue_size", s.Runtime.ThreadQueueSize,
	)
	log.Infow("config dump: stats",
		"interval_seconds", int64(s.Stats.Interval.Seconds()),
		"url", s.Stats.URL,
		"dump_stdout", s.Stats.DumpToStdout,
		"send", s.Stats.SendEnabled,
	)
	log.Infow("config dump: http server",
		"ip", s.HTTPServer.DisplayIP(),
		"port", s.HTTPServer.BindPort,
		"max_conns", s.HTTPServer.MaxConnections,
		"backlog", s.HTTPServer.Backlog,
		"keep_alive_timeout_seconds", int64(s.HTTPServer.KeepAliveTimeout.Seconds()),
		"message_max_size", s.HTTPServer.RequestMaxSize,
	)
	log.Infow("config dump: http client",
		"conns_per_ip", s.HTTPClient.ConnectionsPerIP,
		"pool_max_conns", s.HTTPClient.PoolMaxConnections,
		"reponse_timeout_ms", s.HTTPClient.ResponseTimeout.Milliseconds(),
		"retries", s.HTTPClient.PostRetries,
		"message_max_size", s.HTTPClient.BodyMaxSize,
	)
}
