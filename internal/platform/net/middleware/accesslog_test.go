package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tglang/internal/platform/logger"
	"tglang/internal/platform/net/middleware"
	kit "tglang/internal/platform/testkit"
)

func TestAccessLog(t *testing.T) {
	var observed atomic.Int64
	var ctxID atomic.Value

	h := middleware.RequestID()(middleware.AccessLog(middleware.AccessLogOptions{
		Slow: 20 * time.Millisecond,
		Observe: func(r *http.Request, status int, _ time.Duration) {
			observed.Store(int64(status))
		},
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID.Store(logger.RequestID(r.Context()))
		switch r.URL.Path {
		case "/boom":
			w.WriteHeader(http.StatusInternalServerError)
		case "/slow":
			time.Sleep(25 * time.Millisecond)
			_, _ = w.Write([]byte("late"))
		default:
			_, _ = w.Write([]byte("ok"))
		}
	})))

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/detect/languages", 200, `"level":"info"`},
		{"/boom", 500, `"level":"error"`},
		{"/slow", 200, `"slow":true`},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		req.Header.Set("X-Request-Id", "rid-"+tt.path)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if rr.Code != tt.status || observed.Load() != int64(tt.status) {
			t.Fatalf("%s: status %d observed %d", tt.path, rr.Code, observed.Load())
		}
		if rr.Header().Get("X-Request-ID") != "rid-"+tt.path {
			t.Fatalf("%s: response id %q", tt.path, rr.Header().Get("X-Request-ID"))
		}
		if ctxID.Load() != "rid-"+tt.path {
			t.Fatalf("%s: logger id %v", tt.path, ctxID.Load())
		}
		kit.MustContain(t, logs.String(), `"path":"`+tt.path+`"`)
		kit.MustContain(t, logs.String(), tt.want)
	}
	kit.MustContain(t, logs.String(), `"request_id":"rid-/boom"`)
}

func TestRecoverJSON(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("classifier exploded")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/detect", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	kit.MustContain(t, rr.Body.String(), `"error":"panic recovered"`)
	kit.MustContain(t, logs.String(), `"panic":"classifier exploded"`)

	abort := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	v := kit.MustPanic(t, func() {
		abort.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
	if v != http.ErrAbortHandler {
		t.Fatalf("re-panicked with %v", v)
	}
}
