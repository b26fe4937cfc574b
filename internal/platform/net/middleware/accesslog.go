package middleware

import (
	"net/http"
	"time"

	"tglang/internal/platform/logger"
	pnet "tglang/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Observer receives one call per finished request, e.g. to feed metrics
type Observer func(r *http.Request, status int, elapsed time.Duration)

// AccessLogOptions configures AccessLog
type AccessLogOptions struct {
	// Slow logs requests taking >= Slow at warn; 0 disables
	Slow time.Duration
	// Observe is called after the request is logged; nil is fine
	Observe Observer
}

// AccessLog binds the request id into the logger context and logs status, size and latency.
// Mount it after RequestID so the id is already on the context
func AccessLog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := pnet.RequestID(r.Context()); id != "" {
				r = r.WithContext(pnet.WithRequestID(r.Context(), id))
				w.Header().Set("X-Request-ID", id)
			}
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			log := logger.C(r.Context())
			evt := log.Info()
			switch {
			case status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn().Bool("slow", true)
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Str("remote", r.RemoteAddr).
				Msg("request done")

			if opt.Observe != nil {
				opt.Observe(r, status, elapsed)
			}
		})
	}
}
