package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdeptTravel/peerd/internal/config"
)

func TestAddr(t *testing.T) {
	assert.Equal(t, ":8080", Addr(config.HTTPServerSettings{BindPort: 8080}))
	assert.Equal(t, "10.0.0.1:9999", Addr(config.HTTPServerSettings{BindIP: "10.0.0.1", BindPort: 9999}))
}

func TestNew_AppliesSettings(t *testing.T) {
	s := config.HTTPServerSettings{
		BindIP:           "127.0.0.1",
		BindPort:         9000,
		KeepAliveTimeout: 42 * time.Second,
		RequestMaxSize:   4096,
	}

	srv := New(s, http.NotFoundHandler())
	assert.Equal(t, "127.0.0.1:9000", srv.Addr)
	assert.Equal(t, 42*time.Second, srv.IdleTimeout)
	assert.Equal(t, 4096, srv.MaxHeaderBytes)
	assert.Equal(t, readTimeout, srv.ReadTimeout)
	assert.Equal(t, writeTimeout, srv.WriteTimeout)
}

func TestNew_CapsRequestBody(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := New(config.HTTPServerSettings{RequestMaxSize: 8}, echo)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)

	rr = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123")))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestListen(t *testing.T) {
	ln, err := Listen(config.HTTPServerSettings{BindIP: "127.0.0.1", MaxConnections: 2})
	require.NoError(t, err)
	defer ln.Close()

	assert.Contains(t, ln.Addr().String(), "127.0.0.1:")
}

func TestNewClient(t *testing.T) {
	c := NewClient(config.HTTPClientSettings{
		ConnectionsPerIP:   4,
		PoolMaxConnections: 64,
		ResponseTimeout:    1500 * time.Millisecond,
	})

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 4, tr.MaxConnsPerHost)
	assert.Equal(t, 4, tr.MaxIdleConnsPerHost)
	assert.Equal(t, 64, tr.MaxIdleConns)
	assert.Equal(t, 1500*time.Millisecond, tr.ResponseHeaderTimeout)
}
