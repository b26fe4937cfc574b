package repokit

import (
	"context"

	"tglang/internal/platform/store"
)

type tag int64

func (t tag) RowsAffected() int64 { return int64(t) }
func (t tag) String() string      { return "OK" }

// recQ records statements in order
type recQ struct {
	sqls []string
	err  error
}

func (q *recQ) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	q.sqls = append(q.sqls, sql)
	return tag(1), q.err
}

func (q *recQ) Query(_ context.Context, sql string, _ ...any) (store.Rows, error) {
	q.sqls = append(q.sqls, sql)
	return nil, q.err
}

func (q *recQ) QueryRow(_ context.Context, sql string, _ ...any) store.Row {
	q.sqls = append(q.sqls, sql)
	return nil
}

// fakeTx runs fn against its own recQ
type fakeTx struct {
	recQ
	txs int
}

func (f *fakeTx) Tx(_ context.Context, fn func(store.RowQuerier) error) error {
	f.txs++
	return fn(&f.recQ)
}

var _ TxRunner = (*fakeTx)(nil)
