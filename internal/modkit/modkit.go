// Package modkit provides module wiring and core deps
package modkit

import (
	"net/http"

	"tglang/internal/modkit/httpkit"
	str "tglang/internal/platform/strings"
)

// Module is the common surface for API modules that can mount routes and expose ports
// keep this tiny so modules stay decoupled
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r httpkit.Router)
	// Ports returns a module specific port set for cross wiring
	Ports() any
	// Name returns the module name
	Name() string
}

// Option mutates build configuration for a module
type Option func(*Built)

// Built is the resolved option set a module keeps
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	// Register attaches extra endpoints after the module's own
	Register func(httpkit.Router)
}

// WithName sets a module name used in logs and registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts a module under a path prefix
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares attaches per module middleware in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects ports declared by another module; the concrete type is owned by the importer
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithRegister adds endpoints to the module router, mostly for tests
func WithRegister(fn func(httpkit.Router)) Option { return func(b *Built) { b.Register = fn } }

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		if o != nil {
			o(&b)
		}
	}
	return b
}

// Mount routes the module prefix, applies its middleware then registers own and extra endpoints.
// Name and prefix are asserted here so a misconfigured module fails at startup
func (b Built) Mount(r httpkit.Router, own func(httpkit.Router)) {
	str.MustString(b.Name, "module name")
	httpkit.MountUnder(r, str.MustPrefix(b.Prefix), b.Mw, func(sub httpkit.Router) {
		if own != nil {
			own(sub)
		}
		if b.Register != nil {
			b.Register(sub)
		}
	})
}
