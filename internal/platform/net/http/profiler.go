package http

import (
	stdhttp "net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler exposes pprof and expvar under prefix, e.g. /debug/pprof/heap.
// Off unless CORE_API_PROFILER is set
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	prefix = "/" + strings.Trim(prefix, "/")
	prof := stdhttp.StripPrefix(prefix, chimw.Profiler())
	r.Handle(prefix, prof)
	r.Handle(prefix+"/*", prof)
}
