package repokit

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

func TestWithBeginHooks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name    string
		hooks   []BeginHook
		wantSQL []string
		wantErr bool
	}{
		{"no hooks", nil, []string{"INSERT"}, false},
		{"timeout first", []BeginHook{StatementTimeout(1500 * time.Millisecond)},
			[]string{"SET LOCAL statement_timeout = 1500", "INSERT"}, false},
		{"zero timeout skipped", []BeginHook{StatementTimeout(0)}, []string{"INSERT"}, false},
		{"hook error stops fn", []BeginHook{func(context.Context, Queryer) error { return errors.New("nope") }},
			nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &fakeTx{}
			tx := WithBeginHooks(inner, tt.hooks...)
			err := WithTx(ctx, tx, func(q Queryer) error {
				_, err := q.Exec(ctx, "INSERT")
				return err
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if !slices.Equal(inner.sqls, tt.wantSQL) {
				t.Fatalf("sqls = %q, want %q", inner.sqls, tt.wantSQL)
			}
			if inner.txs != 1 {
				t.Fatalf("txs = %d", inner.txs)
			}
		})
	}
}

func TestHookedTx_Delegates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	inner := &fakeTx{}
	tx := WithBeginHooks(inner, StatementTimeout(time.Second))

	_, _ = tx.Exec(ctx, "E")
	_, _ = tx.Query(ctx, "Q")
	_ = tx.QueryRow(ctx, "R")
	// hooks only run inside Tx
	if !slices.Equal(inner.sqls, []string{"E", "Q", "R"}) {
		t.Fatalf("sqls = %q", inner.sqls)
	}
}
