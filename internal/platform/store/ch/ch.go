// Package ch is a thin clickhouse-go client for batched inserts and reads
package ch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures the client
type Config struct {
	// URL is a clickhouse:// DSN, e.g. clickhouse://default:@localhost:9000/default
	URL  string
	Role string
	Tag  string
}

// batch is the part of driver.Batch an insert needs
type batch interface {
	Append(v ...any) error
	Send() error
	Abort() error
}

// CH wraps a native protocol connection
type CH struct {
	conn    driver.Conn
	prepare func(ctx context.Context, query string) (batch, error)
}

var openConn = clickhouse.Open

// Open parses the DSN and dials lazily; call Ping to confirm the server is up
func Open(cfg Config) (*CH, error) {
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role, cfg.Tag)
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	conn, err := openConn(opts)
	if err != nil {
		return nil, err
	}
	return &CH{
		conn: conn,
		prepare: func(ctx context.Context, q string) (batch, error) {
			return conn.PrepareBatch(ctx, q)
		},
	}, nil
}

// Ping round trips to the server
func (c *CH) Ping(ctx context.Context) error { return c.conn.Ping(ctx) }

// Exec runs DDL or a statement without results
func (c *CH) Exec(ctx context.Context, sql string, args ...any) error {
	return c.conn.Exec(ctx, sql, args...)
}

// Insert sends rows as one native batch; every row must match columns positionally
func (c *CH) Insert(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	b, err := c.prepare(ctx, InsertSQL(table, columns))
	if err != nil {
		return err
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			_ = b.Abort()
			return fmt.Errorf("ch insert %s: row %d has %d values, want %d", table, i, len(r), len(columns))
		}
		if err := b.Append(r...); err != nil {
			_ = b.Abort()
			return err
		}
	}
	return b.Send()
}

// Query runs a read
func (c *CH) Query(ctx context.Context, sql string, args ...any) (driver.Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

// Close closes the connection pool
func (c *CH) Close() error { return c.conn.Close() }

// InsertSQL renders the batch prologue
func InsertSQL(table string, columns []string) string {
	if len(columns) == 0 {
		return "INSERT INTO " + table
	}
	return "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ")"
}
