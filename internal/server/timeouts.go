// internal/server/timeouts.go
//
// HTTP server helper driven by the resolved http.server settings.
//
// Production hardening recommends:
//
//   • ReadTimeout   – abort slow-loris headers (10 s)
//   • WriteTimeout  – cap total response time (15 s)
//   • IdleTimeout   – close keep-alives on idle clients (keep_alive_timeout_seconds)
//
// message_max_size caps both the header block and the request body.
// max_conns caps concurrently accepted connections at the listener.
//

package server

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/netutil"

	"github.com/AdeptTravel/peerd/internal/config"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 15 * time.Second
)

// Addr joins bind ip and port; an empty ip listens on all interfaces.
func Addr(s config.HTTPServerSettings) string {
	return net.JoinHostPort(s.BindIP, strconv.Itoa(int(s.BindPort)))
}

// New constructs an *http.Server from the http.server settings.
func New(s config.HTTPServerSettings, handler http.Handler) *http.Server {
	if s.RequestMaxSize > 0 {
		handler = http.MaxBytesHandler(handler, int64(s.RequestMaxSize))
	}
	srv := &http.Server{
		Addr:         Addr(s),
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  s.KeepAliveTimeout,
	}
	if s.RequestMaxSize > 0 {
		srv.MaxHeaderBytes = int(s.RequestMaxSize)
	}
	return srv
}

// Listen opens the TCP listener for s, capped at MaxConnections when set.
// The kernel backlog stays at the platform default.
func Listen(s config.HTTPServerSettings) (net.Listener, error) {
	ln, err := net.Listen("tcp", Addr(s))
	if err != nil {
		return nil, err
	}
	if s.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, int(s.MaxConnections))
	}
	return ln, nil
}
