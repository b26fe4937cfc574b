// Package module wires stats into the API using modkit
package module

import (
	modkit "tglang/internal/modkit"
	"tglang/internal/modkit/httpkit"
	statshttp "tglang/internal/services/api/stats/http"
	statssvc "tglang/internal/services/api/stats/service"
	journal "tglang/internal/services/journal/domain"
)

// Needs are ports stats takes from the journal; a nil Query disables the endpoints
type Needs struct {
	Query journal.QueryPort
}

// Module implements the stats module
type Module struct {
	b   modkit.Built
	svc *statssvc.Svc
}

// New constructs the stats module
func New(_ modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("stats"), modkit.WithPrefix("/stats")}, opts...)...)

	var needs Needs
	if n, ok := b.Ports.(Needs); ok {
		needs = n
	}
	return &Module{b: b, svc: statssvc.New(needs.Query)}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { statshttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Ports returns nil; stats exposes nothing to other modules
func (m *Module) Ports() any { return nil }
