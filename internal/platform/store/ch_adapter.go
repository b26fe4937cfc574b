package store

import (
	"context"

	perr "tglang/internal/platform/errors"
	"tglang/internal/platform/store/ch"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// chClient is the surface of *ch.CH the adapter relies on
type chClient interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, args ...any) error
	Insert(ctx context.Context, table string, columns []string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (driver.Rows, error)
	Close() error
}

var _ chClient = (*ch.CH)(nil)

// clickhouseAdapter maps driver errors to perr codes and driver rows to store.Rows
type clickhouseAdapter struct {
	inner chClient
}

func newCHAdapter(c chClient) *clickhouseAdapter { return &clickhouseAdapter{inner: c} }

func (a *clickhouseAdapter) Ping(ctx context.Context) error {
	return perr.FromClickHouse(a.inner.Ping(ctx), "ch ping")
}

func (a *clickhouseAdapter) Exec(ctx context.Context, sql string, args ...any) error {
	return perr.FromClickHouse(a.inner.Exec(ctx, sql, args...), "ch exec")
}

func (a *clickhouseAdapter) Insert(ctx context.Context, table string, columns []string, rows [][]any) error {
	return perr.FromClickHouse(a.inner.Insert(ctx, table, columns, rows), "ch insert "+table)
}

func (a *clickhouseAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.inner.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromClickHouse(err, "ch query")
	}
	return chRows{r}, nil
}

func (a *clickhouseAdapter) Close() error { return a.inner.Close() }

// chRows hides the error returned by driver.Rows.Close
type chRows struct{ r driver.Rows }

func (x chRows) Next() bool             { return x.r.Next() }
func (x chRows) Scan(dest ...any) error { return x.r.Scan(dest...) }
func (x chRows) Err() error             { return x.r.Err() }
func (x chRows) Close()                 { _ = x.r.Close() }
func (x chRows) Columns() []string      { return x.r.Columns() }
