// Package module wires detect into the API using modkit
package module

import (
	"context"

	modkit "tglang/internal/modkit"
	"tglang/internal/modkit/httpkit"
	"tglang/internal/services/api/detect/domain"
	detecthttp "tglang/internal/services/api/detect/http"
	detectsvc "tglang/internal/services/api/detect/service"
	"tglang/internal/services/detectcache"
	journal "tglang/internal/services/journal/domain"
)

// Ports are the detect module's exported ports
type Ports struct {
	Detector domain.DetectorPort
}

// Needs are ports detect takes from other modules; a missing recorder disables journaling
type Needs struct {
	Recorder journal.RecorderPort
}

// Module implements the detect module
type Module struct {
	b     modkit.Built
	svc   *detectsvc.Service
	opt   Options
	ports Ports
}

// New constructs the detect module. deps.Res is required
func New(deps modkit.Deps, opt Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("detect"), modkit.WithPrefix("/detect")}, opts...)...)
	if deps.Res == nil {
		panic("detect module: nil resources")
	}

	var needs Needs
	if n, ok := b.Ports.(Needs); ok {
		needs = n
	}

	copt := detectcache.OptionsFromConfig(deps.Cfg)
	copt.Metrics = deps.Metrics
	if deps.Res.Model != nil {
		copt.Model = deps.Res.Model.Info().SHA256
	}
	cache := detectcache.New(deps.Redis, copt)

	svc := detectsvc.New(deps.Res, needs.Recorder, cache, deps.Metrics, opt.Service)
	return &Module{b: b, svc: svc, opt: opt, ports: Ports{Detector: detectorPort{svc}}}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		detecthttp.Register(rr, m.svc, detecthttp.Limits{Single: m.opt.BodyLimit, Batch: m.opt.BatchBody})
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type detectorPort struct{ svc *detectsvc.Service }

func (p detectorPort) Detect(ctx context.Context, text string) (domain.Detection, error) {
	return p.svc.Detect(ctx, text)
}
