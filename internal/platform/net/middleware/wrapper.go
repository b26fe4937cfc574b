// Package middleware holds the HTTP middleware stack: chi and cors adapters plus in house access logging and recovery
package middleware

import (
	"net/http"
	"time"

	pstrings "tglang/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the stdlib middleware shape
type Middleware = func(http.Handler) http.Handler

// RequestID attaches or propagates X-Request-ID
func RequestID() Middleware { return chimw.RequestID }

// RealIP rewrites RemoteAddr from X-Forwarded-For / X-Real-IP
func RealIP() Middleware { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache disables client and proxy caching
func NoCache() Middleware { return chimw.NoCache }

// Compress gzips/deflates responses at level
func Compress(level int) Middleware { return chimw.Compress(level) }

// StripSlashes strips a trailing slash before routing
func StripSlashes() Middleware { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 before any routing or logging
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// Throttle bounds concurrent requests; excess waits up to wait in a backlog, then gets 429
func Throttle(limit, backlog int, wait time.Duration) Middleware {
	return chimw.ThrottleBacklog(limit, backlog, wait)
}

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS allows GET/POST from AllowedOrigins (all when empty)
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID"}),
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         o.MaxAge,
	})
}
