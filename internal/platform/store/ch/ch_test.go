package ch

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeBatch struct {
	rows    [][]any
	sent    bool
	aborted bool
	failAt  int
}

func (b *fakeBatch) Append(v ...any) error {
	if b.failAt > 0 && len(b.rows)+1 == b.failAt {
		return errors.New("bad value")
	}
	b.rows = append(b.rows, v)
	return nil
}
func (b *fakeBatch) Send() error  { b.sent = true; return nil }
func (b *fakeBatch) Abort() error { b.aborted = true; return nil }

func withBatch(b *fakeBatch, gotSQL *string) *CH {
	return &CH{prepare: func(_ context.Context, q string) (batch, error) {
		*gotSQL = q
		return b, nil
	}}
}

func TestInsertSQL(t *testing.T) {
	t.Parallel()
	if got := InsertSQL("detections", []string{"ts", "language"}); got != "INSERT INTO detections (ts, language)" {
		t.Fatalf("got %q", got)
	}
	if got := InsertSQL("detections", nil); got != "INSERT INTO detections" {
		t.Fatalf("got %q", got)
	}
}

func TestInsert(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cols := []string{"language", "code"}

	t.Run("sends", func(t *testing.T) {
		b := &fakeBatch{}
		var sql string
		err := withBatch(b, &sql).Insert(ctx, "detections", cols, [][]any{{"GO", uint16(33)}, {"C", uint16(10)}})
		if err != nil || !b.sent || len(b.rows) != 2 {
			t.Fatalf("err=%v sent=%v rows=%v", err, b.sent, b.rows)
		}
		if sql != "INSERT INTO detections (language, code)" {
			t.Fatalf("sql = %q", sql)
		}
	})

	t.Run("empty is a no-op", func(t *testing.T) {
		c := &CH{prepare: func(context.Context, string) (batch, error) {
			t.Fatalf("prepare called for empty insert")
			return nil, nil
		}}
		if err := c.Insert(ctx, "detections", cols, nil); err != nil {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("width mismatch aborts", func(t *testing.T) {
		b := &fakeBatch{}
		var sql string
		err := withBatch(b, &sql).Insert(ctx, "detections", cols, [][]any{{"GO"}})
		if err == nil || !strings.Contains(err.Error(), "row 0 has 1 values") || !b.aborted || b.sent {
			t.Fatalf("err=%v aborted=%v sent=%v", err, b.aborted, b.sent)
		}
	})

	t.Run("append error aborts", func(t *testing.T) {
		b := &fakeBatch{failAt: 2}
		var sql string
		err := withBatch(b, &sql).Insert(ctx, "detections", cols, [][]any{{"GO", uint16(1)}, {"C", uint16(2)}})
		if err == nil || !b.aborted || b.sent {
			t.Fatalf("err=%v aborted=%v sent=%v", err, b.aborted, b.sent)
		}
	})
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()
	ci := BuildClientInfo(" tglang-api ", "")
	names := map[string]string{}
	for _, p := range ci.Products {
		names[p.Name] = p.Version
	}
	if names["role"] != "tglang-api" {
		t.Fatalf("role = %q", names["role"])
	}
	if _, ok := names["tglang"]; ok {
		t.Fatalf("empty tag should be omitted: %v", names)
	}
	if !strings.HasPrefix(names["go"], "go") {
		t.Fatalf("go version = %q", names["go"])
	}
}

func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()
	if _, err := Open(Config{URL: "://nope"}); err == nil {
		t.Fatalf("expected DSN error")
	}
}
