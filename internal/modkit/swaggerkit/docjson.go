package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"

	perr "tglang/internal/platform/errors"

	"github.com/swaggo/swag/v2"
)

// InstanceName is the swag registry name the api docs package registers under
const InstanceName = "api"

// SpecMutator lets modules tweak the parsed swagger spec before it is served
type SpecMutator func(map[string]any)

var (
	mutMu    sync.RWMutex
	mutators []SpecMutator
)

// docReader is a seam so tests can inject documents without the docs package
var docReader = func() (string, error) { return swag.ReadDoc(InstanceName) }

// Register adds a spec mutator for swagger JSON
func Register(m SpecMutator) {
	if m != nil {
		mutMu.Lock()
		mutators = append(mutators, m)
		mutMu.Unlock()
	}
}

// serveDocJSON serves the registered spec with servers and shared error responses filled in
func serveDocJSON(titleSuffix string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		raw, err := docReader()
		if err != nil {
			http.Error(w, "spec not registered", http.StatusNotFound)
			return
		}

		var spec map[string]any
		if err := json.Unmarshal([]byte(raw), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, "/api/v1")
		if titleSuffix != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + titleSuffix
				}
			}
		}

		ensureErrorResponseDefinition(spec)
		addDefaultResponse(spec, http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered")
		addDefaultResponse(spec, http.StatusBadRequest, perr.ErrorCodeValidation, "text is a required field")

		mutMu.RLock()
		for _, m := range mutators {
			m(spec)
		}
		mutMu.RUnlock()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers lifts swagger 2 to OAS3, pins 3.1 down to 3.0.3 for the UI and sets servers
func ensureServers(spec map[string]any, url string) {
	if _, hasSwagger := spec["swagger"]; hasSwagger {
		spec["openapi"] = "3.0.3"
		delete(spec, "swagger")
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// ensureErrorResponseDefinition mirrors the runtime error envelope
func ensureErrorResponseDefinition(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// addDefaultResponse injects status into every operation that does not declare it
func addDefaultResponse(spec map[string]any, status int, code perr.ErrorCode, msg string) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	text := http.StatusText(status)
	key := strconv.Itoa(status)
	resp := map[string]any{
		"description": text,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      text,
					"code":        int(code),
					"error":       msg,
					"request_id":  "tglang-api/abc-000001",
				},
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, exists := responses[key]; !exists {
				responses[key] = resp
			}
		}
	}
}
