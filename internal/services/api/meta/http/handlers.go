// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"slices"
	"time"

	"tglang/internal/core/classifier"
	"tglang/internal/core/fasttext"
	"tglang/internal/core/language"
	"tglang/internal/core/resources"
	"tglang/internal/core/version"
	"tglang/internal/modkit/httpkit"
	"tglang/internal/platform/store"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time

	// Backends are the enabled stores by name; Known names missing here report skipped
	Backends map[string]store.Pinger
	Known    []string

	// Modules lists mounted module names
	Modules func() []string

	Res          *resources.Resources
	ReadyTimeout time.Duration
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	r.Get("/ready", httpkit.Handle(h.ready))
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/model", h.model)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"tglang-api"`
	Started string `json:"started" example:"2026-10-19T13:00:00Z"`
	Now     string `json:"now"     example:"2026-10-19T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-19T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string   `json:"name"    example:"tglang-api"`
	Started string   `json:"started" example:"2026-10-19T13:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules"`
}

// ModelResponse describes the loaded classifier resources
type ModelResponse struct {
	Path           string        `json:"path"            example:"./resources/fasttext-model.bin"`
	LoadedAt       string        `json:"loaded_at"       example:"2026-10-19T13:00:00Z"`
	Model          fasttext.Info `json:"model"`
	SymbolsVersion int           `json:"symbols_version" example:"1"`
	Symbols        int           `json:"symbols"         example:"1024"`
	SetVersion     int           `json:"set_version"     example:"1"`
	Languages      int           `json:"languages"       example:"100"`
	Threshold      float64       `json:"threshold"       example:"0.3"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Failure 503 {object} ReadyResponse "a backend failed its ping"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) httpkit.Response {
	ctx, cancel := stdctx.WithTimeout(r.Context(), h.deps.ReadyTimeout)
	defer cancel()

	names := append([]string(nil), h.deps.Known...)
	for name := range h.deps.Backends {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	out := ReadyResponse{Status: "ok", Checks: make([]ReadyCheck, 0, len(names))}
	for _, name := range names {
		c := ReadyCheck{Name: name, Status: "skipped"}
		if p, ok := h.deps.Backends[name]; ok && p != nil {
			c.Status = "ok"
			if err := p.Ping(ctx); err != nil {
				c.Status, c.Error = "fail", err.Error()
				out.Status = "fail"
			}
		}
		out.Checks = append(out.Checks, c)
	}
	out.Now = time.Now().UTC().Format(time.RFC3339)

	status := http.StatusOK
	if out.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	return httpkit.Response{Status: status, Body: out}
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.InfoFor(h.deps.ServiceName), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info, uptime and mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	var mods []string
	if h.deps.Modules != nil {
		mods = h.deps.Modules()
	}
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
		Modules: mods,
	}, nil
}

// swagger:route GET /meta/model Meta metaModel
// @Summary Loaded model and symbol set
// @Tags Meta
// @Produce json
// @Success 200 {object} ModelResponse "ok"
// @Router /meta/model [get]
func (h *handlers) model(_ *http.Request) (any, error) {
	res := h.deps.Res
	out := ModelResponse{
		SetVersion: language.SetVersion,
		Languages:  len(language.All()),
		Threshold:  classifier.Threshold,
	}
	if res == nil {
		return out, nil
	}
	out.Path = res.ModelPath
	out.LoadedAt = res.LoadedAt.UTC().Format(time.RFC3339)
	if res.Model != nil {
		out.Model = res.Model.Info()
	}
	if res.Symbols != nil {
		out.SymbolsVersion = res.Symbols.Version()
		out.Symbols = res.Symbols.Len()
	}
	return out, nil
}
