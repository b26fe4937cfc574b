package httpkit

import (
	"net/http"
	"strings"
)

// Middlewares is the per scope middleware list
type Middlewares = []func(http.Handler) http.Handler

// MountUnder scopes mount to prefix, with mw applied to that scope only
func MountUnder(r Router, prefix string, mw Middlewares, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPI mounts the versioned scope /api/<version>; "v2" and "/v2" are the same
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(o), func(api httpkit.Router) {
//		detect.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw Middlewares, mount func(Router)) {
	MountUnder(r, "/api/"+strings.Trim(version, "/"), mw, mount)
}

// MountAPIV1 mounts /api/v1, the only version served today
func MountAPIV1(r Router, mw Middlewares, mount func(Router)) { MountAPI(r, "v1", mw, mount) }

// Get registers a bodiless handler answered through the envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, Call(h)) }

// PostJSON registers a POST handler that decodes and validates T first
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...JSONOptions) {
	r.Post(path, JSON(h, opts...))
}
