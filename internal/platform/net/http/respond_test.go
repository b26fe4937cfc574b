package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "tglang/internal/platform/errors"
	pnet "tglang/internal/platform/net"
	phttp "tglang/internal/platform/net/http"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return env
}

func TestHandle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		resp       phttp.Response
		wantStatus int
		wantCode   perr.ErrorCode
		wantErr    string
	}{
		{"ok", phttp.OK(map[string]string{"language": "GO"}), 200, 0, ""},
		{"created", phttp.Created("x"), 201, 0, ""},
		{"zero status", phttp.Response{Body: 1}, 200, 0, ""},
		{"not found", phttp.Error(perr.NotFoundf("feedback %s", "abc")), 404, perr.ErrorCodeNotFound, "feedback abc"},
		{"too large", phttp.Error(perr.TooLargef("body exceeds 10 bytes")), 413, perr.ErrorCodeTooLarge, "body exceeds 10 bytes"},
		{"unavailable", phttp.Error(perr.Unavailablef("journal disabled")), 503, perr.ErrorCodeUnavailable, "journal disabled"},
		{"foreign", phttp.Error(errors.New("boom")), 500, perr.ErrorCodeUnknown, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(pnet.WithRequestID(req.Context(), "req-1"))
			rr := httptest.NewRecorder()
			phttp.Handle(func(*http.Request) phttp.Response { return tt.resp })(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Fatalf("content type = %q", ct)
			}
			env := decode(t, rr)
			if env.StatusCode != tt.wantStatus || env.Status != http.StatusText(tt.wantStatus) {
				t.Fatalf("envelope = %+v", env)
			}
			if env.Code != tt.wantCode || env.Error != tt.wantErr || env.RequestID != "req-1" {
				t.Fatalf("envelope = %+v", env)
			}
		})
	}
}

func TestHandle_HeadersAndNoContent(t *testing.T) {
	t.Parallel()
	rr := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Response{Status: http.StatusNoContent, Header: http.Header{"X-Tglang-Set": {"42"}}}
	})(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusNoContent || rr.Body.Len() != 0 {
		t.Fatalf("got %d %q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Tglang-Set") != "42" {
		t.Fatalf("header lost")
	}
}

func TestRespondError_Field(t *testing.T) {
	t.Parallel()
	rr := httptest.NewRecorder()
	err := perr.WithField(perr.New(perr.ErrorCodeValidation, "text is a required field"), "text")
	phttp.RespondError(rr, httptest.NewRequest(http.MethodPost, "/detect", nil), err)

	env := decode(t, rr)
	if rr.Code != 400 || env.Field != "text" || env.Code != perr.ErrorCodeValidation {
		t.Fatalf("got %d %+v", rr.Code, env)
	}
}
