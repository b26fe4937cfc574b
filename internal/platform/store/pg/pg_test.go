package pg

import (
	"context"
	"errors"
	"testing"

	"tglang/internal/platform/testkit"
)

func TestPoolConfig(t *testing.T) {
	t.Parallel()
	pc, err := PoolConfig(Config{URL: "postgres://u:p@localhost:5432/tglang", AppName: "tglang-api", MaxConns: 3})
	if err != nil {
		t.Fatalf("PoolConfig: %v", err)
	}
	if pc.MaxConns != 3 {
		t.Fatalf("MaxConns = %d", pc.MaxConns)
	}
	if got := pc.ConnConfig.RuntimeParams["application_name"]; got != "tglang-api" {
		t.Fatalf("application_name = %q", got)
	}

	if _, err := PoolConfig(Config{URL: "postgres://u:p@localhost:notaport/db"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_Lazy(t *testing.T) {
	t.Parallel()
	p, err := Open(context.Background(), Config{URL: "postgres://u:p@127.0.0.1:1/db?sslmode=disable", SlowMs: 9}, nil)
	if err != nil {
		t.Fatalf("Open should not dial: %v", err)
	}
	defer p.Close()
	if p.SlowMs != 9 || p.Tracer != nil {
		t.Fatalf("unexpected client %+v", p)
	}
}

func TestCompact(t *testing.T) {
	t.Parallel()
	in := "SELECT id,\n\t\ttext\n  FROM detection_feedback\r\n ORDER BY created_at DESC"
	if got := Compact(in); got != "SELECT id, text FROM detection_feedback ORDER BY created_at DESC" {
		t.Fatalf("got %q", got)
	}
}

func TestTracer(t *testing.T) {
	t.Parallel()
	log, buf := testkit.Logger()
	tr := Tracer(*log)

	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT\n1", Args: []any{"secret"}, ElapsedUS: 1500})
	testkit.MustContain(t, buf.String(), `"level":"info"`)
	testkit.MustContain(t, buf.String(), `"sql":"SELECT 1"`)
	testkit.MustContain(t, buf.String(), `"args":1`)
	testkit.MustContain(t, buf.String(), `"elapsed_ms":1.5`)

	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 2", Err: errors.New("boom")})
	testkit.MustContain(t, buf.String(), `"level":"warn"`)
}
