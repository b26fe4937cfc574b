package store

import (
	"context"
	"time"

	perr "tglang/internal/platform/errors"
	chx "tglang/internal/platform/store/ch"
	"tglang/internal/platform/store/pg"
	rdx "tglang/internal/platform/store/redis"
)

// seams for tests
var (
	openPGPool  = pg.Open
	openCHConn  = chx.Open
	openRDSConn = rdx.Open

	sleep = func(ctx context.Context, d time.Duration) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}
)

// waitReady pings until the backend answers, backing off exponentially up to r.MaxBackoff
func waitReady(ctx context.Context, s *Store, name string, r RetryConfig, ping func(context.Context) error) error {
	var lastErr error
	backoff := r.Backoff
	for attempt := 1; attempt <= r.Attempts; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, r.PingTimeout)
		lastErr = ping(pctx)
		cancel()
		if lastErr == nil {
			s.Log.Debug().Str("backend", name).Int("attempt", attempt).Msg("backend ready")
			return nil
		}
		s.Log.Warn().Err(lastErr).Str("backend", name).Int("attempt", attempt).Dur("backoff", backoff).Msg("backend not ready")
		if attempt == r.Attempts {
			break
		}
		if err := sleep(ctx, backoff); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s: gave up waiting", name)
		}
		backoff = min(backoff*2, r.MaxBackoff)
	}
	return perr.Wrapf(lastErr, perr.ErrorCodeUnavailable, "%s: ping failed after %d attempts", name, r.Attempts)
}

// openPG opens the pool, waits for it and only then publishes the traced adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := openPGPool(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "pg: open")
	}
	if err := waitReady(ctx, s, "pg", cfg.Retry, p.Ping); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	c, err := openCHConn(chx.Config{URL: cfg.CH.URL, Role: cfg.CH.Role, Tag: cfg.CH.Tag})
	if err != nil {
		return nil, perr.FromClickHouse(err, "ch: open")
	}
	if err := waitReady(ctx, s, "ch", cfg.Retry, c.Ping); err != nil {
		_ = c.Close()
		return nil, err
	}
	return newCHAdapter(c), nil
}

func openRedis(ctx context.Context, cfg Config, s *Store) (KV, error) {
	c, err := openRDSConn(rdx.Config{URL: cfg.Redis.URL, ClientName: cfg.AppName})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "redis: open")
	}
	if err := waitReady(ctx, s, "redis", cfg.Retry, c.Ping); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}
