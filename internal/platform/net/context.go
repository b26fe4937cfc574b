// Package net holds transport neutral request context helpers
package net

import (
	"context"

	"tglang/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequestID stores id where both chi and the logger look for it
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, chimw.RequestIDKey, id)
	return logger.WithRequest(ctx, id)
}

// RequestID returns the request id on ctx, or ""
func RequestID(ctx context.Context) string {
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return logger.RequestID(ctx)
}
