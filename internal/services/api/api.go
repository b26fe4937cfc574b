// Package api provides the HTTP API for the application
//
// @title tglang API
// @version 1.0
// @description Programming language detection for code snippets.
// @BasePath /api/v1
package api

import (
	"context"
	"net/http"
	"time"

	"tglang/internal/core/language"
	"tglang/internal/core/resources"
	"tglang/internal/core/version"
	"tglang/internal/platform/config"
	"tglang/internal/platform/logger"
	"tglang/internal/platform/metrics"
	phttp "tglang/internal/platform/net/http"
	"tglang/internal/platform/net/middleware"
	"tglang/internal/platform/store"

	"tglang/internal/modkit"
	"tglang/internal/modkit/httpkit"
	"tglang/internal/modkit/module"
	"tglang/internal/modkit/swaggerkit"

	// registers the OpenAPI document
	_ "tglang/internal/services/api/docs"

	detectdomain "tglang/internal/services/api/detect/domain"
	detectmod "tglang/internal/services/api/detect/module"
	feedbackmod "tglang/internal/services/api/feedback/module"
	metamod "tglang/internal/services/api/meta/module"
	statsmod "tglang/internal/services/api/stats/module"
	journaldomain "tglang/internal/services/journal/domain"
	journalmod "tglang/internal/services/journal/module"
)

// Options are the API options
type Options struct {
	Config    config.Conf
	Store     *store.Store
	Resources *resources.Resources
	Metrics   *metrics.Metrics
	Logger    *logger.Logger

	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// OptionsFrom reads CORE_API_SWAGGER, CORE_API_PROFILER and CORE_API_METRICS
func OptionsFrom(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_API_")
	return Options{
		Config:         cfg,
		EnableSwagger:  c.MayBool("SWAGGER", false),
		EnableProfiler: c.MayBool("PROFILER", false),
		EnableMetrics:  c.MayBool("METRICS", true),
	}
}

// Mount builds every module and mounts them onto r. The returned func drains the journal
// and must run after the server stopped accepting requests
func Mount(ctx context.Context, r phttp.Router, opt Options) (func(context.Context) error, error) {
	log := opt.Logger
	if log == nil {
		log = logger.Named("api")
	}
	deps := modkit.Deps{
		Log:     *log,
		Cfg:     opt.Config,
		Res:     opt.Resources,
		Metrics: opt.Metrics,
	}.FromStore(opt.Store)

	// the journal owns the recorder and query ports the other modules consume
	journal, err := journalmod.New(ctx, deps, journalmod.FromConfig(deps.Cfg))
	if err != nil {
		return nil, err
	}
	rec := module.MustPortsOf[journaldomain.RecorderPort](journal)
	query, _ := module.PortsOf[journaldomain.QueryPort](journal)

	detect := detectmod.New(deps, detectmod.FromConfig(deps.Cfg), modkit.WithPorts(detectmod.Needs{Recorder: rec}))
	detector := module.MustPortsOf[detectdomain.DetectorPort](detect)

	feedback, err := feedbackmod.New(ctx, deps, feedbackmod.FromConfig(deps.Cfg),
		modkit.WithPorts(feedbackmod.Needs{Detector: detector}))
	if err != nil {
		_ = journal.Close(ctx)
		return nil, err
	}

	mods := []modkit.Module{
		metamod.New(deps),
		detect,
		statsmod.New(deps, modkit.WithPorts(statsmod.Needs{Query: query})),
		feedback,
		journal, // no routes, registered for its ports
	}

	// liveness stays outside the api stack so it is never throttled or logged
	r.Use(middleware.Heartbeat("/ping"))

	stack := httpkit.StackOptionsFrom(deps.Cfg.Prefix("CORE_"))
	stack.Observe = func(req *http.Request, status int, elapsed time.Duration) {
		opt.Metrics.Request(phttp.RoutePattern(req), req.Method, status, elapsed)
	}

	swaggerkit.Register(func(doc map[string]any) {
		if info, ok := doc["info"].(map[string]any); ok {
			info["version"] = version.Info().Version
			info["x-language-set"] = language.SetVersion
		}
	})
	swaggerkit.Mount(r, opt.EnableSwagger, "")
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics && opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(stack), func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	log.Info().Strs("modules", module.Names()).Msg("api mounted")
	return journal.Close, nil
}
