// Package swaggerkit mounts the Swagger UI and serves the registered OpenAPI document
package swaggerkit

import (
	"net/http"

	phttp "tglang/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	docsRoot = "/api/docs"
	docJSON  = docsRoot + "/doc.json"
)

// Mount serves the UI at /api/docs/ and the document at /api/docs/doc.json; no-op when disabled
func Mount(r phttp.Router, enabled bool, titleSuffix string) {
	if !enabled {
		return
	}
	r.Get(docsRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsRoot+"/", http.StatusPermanentRedirect)
	})
	r.Get(docJSON, serveDocJSON(titleSuffix))
	r.Handle(docsRoot+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName(InstanceName),
		httpSwagger.URL(docJSON),
		httpSwagger.DocExpansion("list"),
	))
}
