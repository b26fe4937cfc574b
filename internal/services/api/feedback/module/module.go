// Package module wires detection feedback into the API using modkit
package module

import (
	"context"

	modkit "tglang/internal/modkit"
	"tglang/internal/modkit/httpkit"
	detect "tglang/internal/services/api/detect/domain"
	fbhttp "tglang/internal/services/api/feedback/http"
	fb "tglang/internal/services/feedback/domain"
	fbrepo "tglang/internal/services/feedback/repo"
	fbsvc "tglang/internal/services/feedback/service"
)

// Needs are ports feedback takes from other modules
type Needs struct {
	Detector detect.DetectorPort
}

// Ports exposes the feedback service, nil when Postgres is disabled
type Ports struct {
	Feedback fb.ServicePort
}

// Module implements the feedback module
type Module struct {
	b     modkit.Built
	svc   fb.ServicePort
	needs Needs
}

// New constructs the feedback module. Without Postgres the routes answer 503
func New(ctx context.Context, deps modkit.Deps, opt Options, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("feedback"), modkit.WithPrefix("/feedback")}, opts...)...)
	m := &Module{b: b}
	if n, ok := b.Ports.(Needs); ok {
		m.needs = n
	}
	if deps.PG == nil {
		deps.Log.Info().Msg("feedback store disabled, postgres is off")
		return m, nil
	}

	svc := fbsvc.New(deps.PG, fbrepo.NewPG(), opt.Service)
	if opt.EnsureSchema {
		if err := svc.EnsureSchema(ctx); err != nil {
			return nil, err
		}
	}
	m.svc = svc
	return m, nil
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { fbhttp.Register(rr, m.svc, m.needs.Detector) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Feedback: m.svc} }
