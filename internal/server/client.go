package server

import (
	"net/http"

	"github.com/AdeptTravel/peerd/internal/config"
)

// NewClient constructs an *http.Client from the http.client settings.
// conns_per_ip bounds connections per host, pool_max_conns bounds idle
// connections overall, and reponse_timeout_ms bounds the wait for response
// headers.
func NewClient(s config.HTTPClientSettings) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxConnsPerHost = int(s.ConnectionsPerIP)
	tr.MaxIdleConnsPerHost = int(s.ConnectionsPerIP)
	tr.MaxIdleConns = int(s.PoolMaxConnections)
	tr.ResponseHeaderTimeout = s.ResponseTimeout
	return &http.Client{Transport: tr}
}
