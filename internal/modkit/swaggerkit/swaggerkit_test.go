package swaggerkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "tglang/internal/platform/net/http"
	kit "tglang/internal/platform/testkit"
)

const doc = `{
  "swagger": "2.0",
  "info": {"title": "tglang API", "version": "1"},
  "paths": {
    "/detect": {"post": {"responses": {"200": {"description": "ok"}}}},
    "/meta/health": {"get": {"responses": {"500": {"description": "custom"}}}}
  }
}`

func getDoc(t *testing.T, r phttp.Router) (int, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	var spec map[string]any
	if rr.Code == http.StatusOK {
		if err := json.Unmarshal(rr.Body.Bytes(), &spec); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rr.Code, spec
}

func TestServeDocJSON(t *testing.T) {
	kit.Swap(t, &docReader, func() (string, error) { return doc, nil })
	kit.Swap(t, &mutators, nil)
	Register(func(spec map[string]any) { spec["x-mutated"] = true })

	r := phttp.NewRouter()
	Mount(r, true, "(staging)")
	code, spec := getDoc(t, r)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}

	if spec["openapi"] != "3.0.3" || spec["swagger"] != nil {
		t.Fatalf("not lifted to OAS3: %v", spec["openapi"])
	}
	if spec["info"].(map[string]any)["title"] != "tglang API (staging)" {
		t.Fatalf("title = %v", spec["info"])
	}
	if spec["x-mutated"] != true {
		t.Fatalf("mutator not applied")
	}

	paths := spec["paths"].(map[string]any)
	detect := paths["/detect"].(map[string]any)["post"].(map[string]any)["responses"].(map[string]any)
	if detect["400"] == nil || detect["500"] == nil {
		t.Fatalf("defaults not injected: %v", detect)
	}
	health := paths["/meta/health"].(map[string]any)["get"].(map[string]any)["responses"].(map[string]any)
	if health["500"].(map[string]any)["description"] != "custom" {
		t.Fatalf("declared response overwritten")
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if schemas["ErrorResponse"] == nil {
		t.Fatalf("ErrorResponse missing")
	}
}

func TestServeDocJSON_Failures(t *testing.T) {
	tests := []struct {
		name   string
		reader func() (string, error)
		status int
	}{
		{"unregistered", func() (string, error) { return "", errors.New("no docs") }, http.StatusNotFound},
		{"bad json", func() (string, error) { return "{", nil }, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kit.Swap(t, &docReader, tt.reader)
			r := phttp.NewRouter()
			Mount(r, true, "")
			if code, _ := getDoc(t, r); code != tt.status {
				t.Fatalf("status = %d, want %d", code, tt.status)
			}
		})
	}
}

func TestMount_Disabled(t *testing.T) {
	t.Parallel()
	r := phttp.NewRouter()
	Mount(r, false, "")
	if code, _ := getDoc(t, r); code != http.StatusNotFound {
		t.Fatalf("disabled docs answered %d", code)
	}
}
