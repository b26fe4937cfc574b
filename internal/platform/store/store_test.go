package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tglang/internal/platform/testkit"
)

type fakePinger struct {
	err    error
	closed bool
}

func (f *fakePinger) Ping(context.Context) error { return f.err }
func (f *fakePinger) Close() error               { f.closed = true; return nil }

type fakeKV struct{ fakePinger }

func (*fakeKV) Get(context.Context, string) ([]byte, error)              { return nil, nil }
func (*fakeKV) Set(context.Context, string, []byte, time.Duration) error { return nil }

type fakeCH struct{ fakePinger }

func (*fakeCH) Exec(context.Context, string, ...any) error              { return nil }
func (*fakeCH) Insert(context.Context, string, []string, [][]any) error { return nil }
func (*fakeCH) Query(context.Context, string, ...any) (Rows, error)     { return nil, nil }

func TestOpen_NothingEnabled(t *testing.T) {
	t.Parallel()
	log, buf := testkit.Logger()
	s, err := Open(context.Background(), Config{AppName: "tglang-test"}, WithLogger(*log))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.PG != nil || s.CH != nil || s.Redis != nil {
		t.Fatalf("expected no backends, got %+v", s)
	}
	if len(s.Pingers()) != 0 {
		t.Fatalf("pingers = %v", s.Pingers())
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	s.Log.Info().Msg("hello")
	testkit.MustContain(t, buf.String(), "hello")
}

func TestOpen_OptionError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	_, err := Open(context.Background(), Config{}, func(*Store) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestGuard(t *testing.T) {
	t.Parallel()

	var nilStore *Store
	if err := nilStore.Guard(context.Background()); err == nil {
		t.Fatalf("nil store should fail")
	}

	ch := &fakeCH{fakePinger{err: errors.New("down")}}
	kv := &fakeKV{}
	s := &Store{CH: ch, Redis: kv}

	names := s.Pingers()
	if _, ok := names["ch"]; !ok {
		t.Fatalf("missing ch pinger")
	}
	if _, ok := names["redis"]; !ok {
		t.Fatalf("missing redis pinger")
	}

	err := s.Guard(context.Background())
	if err == nil || !strings.Contains(err.Error(), "ch: down") {
		t.Fatalf("Guard err = %v", err)
	}
	if strings.Contains(err.Error(), "redis") {
		t.Fatalf("healthy redis reported: %v", err)
	}

	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !ch.closed || !kv.closed {
		t.Fatalf("backends not closed")
	}
}
