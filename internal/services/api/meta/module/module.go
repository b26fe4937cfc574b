// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "tglang/internal/modkit"
	"tglang/internal/modkit/httpkit"
	"tglang/internal/modkit/module"
	"tglang/internal/platform/store"

	metahttp "tglang/internal/services/api/meta/http"
)

// ServiceName is reported by health and service endpoints
const ServiceName = "tglang-api"

// Module implements the modkit.Module interface
type Module struct {
	b         modkit.Built
	deps      modkit.Deps
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	return &Module{b: b, deps: deps, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   m.startedAt,
			Backends:    backends(m.deps),
			Known:       []string{"ch", "pg", "redis"},
			Modules:     module.Names,
			Res:         m.deps.Res,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.b.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }

func backends(d modkit.Deps) map[string]store.Pinger {
	out := map[string]store.Pinger{}
	if p, ok := d.PG.(store.Pinger); ok {
		out["pg"] = p
	}
	if p, ok := d.CH.(store.Pinger); ok {
		out["ch"] = p
	}
	if p, ok := d.Redis.(store.Pinger); ok {
		out["redis"] = p
	}
	return out
}
