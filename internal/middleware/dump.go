// internal/middleware/dump.go
//
// Request-dump middleware.
//
// Logs one line per request, selected by outcome:
//
//   • core.reqs_dump_ok   – responses with status < 400
//   • core.reqs_dump_err  – responses with status >= 400
//
// With both flags off the handler is returned unwrapped.

package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/AdeptTravel/peerd/internal/config"
)

// DumpRequests wraps next according to the runtime dump flags.
func DumpRequests(log *zap.SugaredLogger, rt config.RuntimeSettings) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !rt.DumpRequestsOK && !rt.DumpRequestsErr {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			failed := status >= http.StatusBadRequest
			if (failed && !rt.DumpRequestsErr) || (!failed && !rt.DumpRequestsOK) {
				return
			}
			log.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"bytes", ww.BytesWritten(),
				"elapsed", time.Since(start),
			)
		})
	}
}
