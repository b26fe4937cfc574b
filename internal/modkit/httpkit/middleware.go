package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"tglang/internal/platform/config"
	"tglang/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORS    middleware.CORSOptions
	Timeout time.Duration
	// ThrottleLimit bounds in flight requests; 0 disables throttling
	ThrottleLimit   int
	ThrottleBacklog int
	ThrottleWait    time.Duration
	SlowRequest     time.Duration
	// Observe sees every finished request, metrics hook in here
	Observe middleware.Observer
}

// StackOptionsFrom reads CORE_API_* keys from cfg
func StackOptionsFrom(cfg config.Conf) StackOptions {
	return StackOptions{
		CORS: middleware.CORSOptions{
			AllowedOrigins: cfg.MayCSV("API_CORS_ORIGINS", nil),
			MaxAge:         cfg.MayInt("API_CORS_MAX_AGE", 300),
		},
		Timeout:         cfg.MayDuration("API_TIMEOUT", 30*time.Second),
		ThrottleLimit:   cfg.MayInt("API_THROTTLE_LIMIT", 0),
		ThrottleBacklog: cfg.MayInt("API_THROTTLE_BACKLOG", 64),
		ThrottleWait:    cfg.MayDuration("API_THROTTLE_WAIT", 5*time.Second),
		SlowRequest:     cfg.MayDuration("API_SLOW_REQUEST", time.Second),
	}
}

// CommonStack returns the per scope middleware slice, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		// correlation before logging so every line carries the id
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest, Observe: o.Observe}),

		// safety
		middleware.RecoverJSON,
		middleware.NoCache(),

		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
	}
	if o.ThrottleLimit > 0 {
		stack = append(stack, middleware.Throttle(o.ThrottleLimit, o.ThrottleBacklog, o.ThrottleWait))
	}
	if o.Timeout > 0 {
		stack = append(stack, middleware.Timeout(o.Timeout))
	}
	return stack
}
