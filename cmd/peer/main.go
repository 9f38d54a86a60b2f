// cmd/peer/main.go
//
// Peer process entry point.
//
// Startup sequence
// ----------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Start the daily rotating logger (tees to console when running in a TTY).
//
//  3. Resolve the configuration: settings file, then topology file, then
//     validation.  Any failure exits non-zero before a socket is opened.
//
//  4. Open the http.server listener and serve /healthz and /metrics until
//     SIGINT or SIGTERM.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AdeptTravel/peerd/internal/config"
	"github.com/AdeptTravel/peerd/internal/logger"
	peermw "github.com/AdeptTravel/peerd/internal/middleware"
	"github.com/AdeptTravel/peerd/internal/server"
)

const (
	serverEnvPath   = "/usr/local/etc/peerd/peer.env"
	envPrefix       = "PEER_"
	shutdownTimeout = 5 * time.Second
)

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	settingsPath := flag.String("config", "conf/peer.yaml", "settings file")
	networkPath := flag.String("network", "conf/network", "peer topology file")
	logDir := flag.String("log-dir", "logs", "log directory, empty for stdout only")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	loadEnv()

	logOut, err := logger.New(logger.Options{Dir: *logDir, Level: *logLevel, Tee: runningInTTY()})
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	cfg, err := config.New(*settingsPath, *networkPath,
		config.WithLogger(logOut),
		config.WithEnvOverlay(envPrefix),
	)
	if err != nil {
		logOut.Fatalw("config load failed", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, logOut); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
	logOut.Infow("peer stopped")
}

// newRouter mounts the health and metrics endpoints.
func newRouter(logOut *zap.SugaredLogger, rt config.RuntimeSettings) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(peermw.DumpRequests(logOut, rt))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// serve runs the listener until ctx is cancelled, then drains it.
func serve(ctx context.Context, cfg *config.Config, logOut *zap.SugaredLogger) error {
	settings := cfg.HTTPServer()
	ln, err := server.Listen(settings)
	if err != nil {
		return err
	}
	srv := server.New(settings, newRouter(logOut, cfg.Runtime()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logOut.Infow("listening", "addr", ln.Addr().String(), "network", cfg.NetworkName())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	return g.Wait()
}
