package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tglang/internal/platform/metrics"
	kit "tglang/internal/platform/testkit"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilSafe(t *testing.T) {
	t.Parallel()
	var m *metrics.Metrics
	kit.MustNotPanic(t, func() {
		m.Detection("GO", metrics.OutcomeDetected, time.Millisecond)
		m.CachedDetection("GO", metrics.OutcomeDetected)
		m.JournalDropped(3)
		m.Cache("hit")
		m.Request("/api/v1/detect", "POST", 200, time.Millisecond)
	})
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("nil handler = %d", rr.Code)
	}
	if m.Registry() != nil {
		t.Fatalf("nil registry expected")
	}
}

func TestCollectors(t *testing.T) {
	t.Parallel()
	m := metrics.New()

	m.Detection("PYTHON", metrics.OutcomeDetected, 2*time.Millisecond)
	m.Detection("PYTHON", metrics.OutcomeDetected, time.Millisecond)
	m.Detection("OTHER", metrics.OutcomeOther, time.Millisecond)
	m.CachedDetection("PYTHON", metrics.OutcomeDetected)
	m.JournalDropped(0)
	m.JournalDropped(2)
	m.Cache("miss")
	m.Request("", "GET", 404, time.Millisecond)
	m.Request("/api/v1/detect", "POST", 200, time.Millisecond)

	tests := []struct {
		metric string
		text   string
	}{
		{"tglang_detections_total", `
# HELP tglang_detections_total Snippets classified, by detected language and outcome
# TYPE tglang_detections_total counter
tglang_detections_total{language="OTHER",outcome="other"} 1
tglang_detections_total{language="PYTHON",outcome="detected"} 3
`},
		{"tglang_journal_dropped_total", `
# HELP tglang_journal_dropped_total Detection events dropped because the journal buffer was full
# TYPE tglang_journal_dropped_total counter
tglang_journal_dropped_total 2
`},
		{"tglang_http_requests_total", `
# HELP tglang_http_requests_total HTTP requests by route pattern, method and status
# TYPE tglang_http_requests_total counter
tglang_http_requests_total{method="GET",route="unmatched",status="404"} 1
tglang_http_requests_total{method="POST",route="/api/v1/detect",status="200"} 1
`},
	}
	for _, tt := range tests {
		if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(tt.text), tt.metric); err != nil {
			t.Fatalf("%s: %v", tt.metric, err)
		}
	}

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rr.Body)
	kit.MustContain(t, string(body), `tglang_cache_requests_total{result="miss"} 1`)
	kit.MustContain(t, string(body), "go_goroutines")
	// cached answers count as detections but leave the latency histogram alone
	kit.MustContain(t, string(body), "tglang_detect_duration_seconds_count 3")
}
