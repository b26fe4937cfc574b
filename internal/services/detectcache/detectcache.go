// Package detectcache memoizes detection results in the key value store.
// The cache is best effort: every failure is logged and reported as a miss
package detectcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"

	"tglang/internal/core/language"
	"tglang/internal/platform/config"
	perr "tglang/internal/platform/errors"
	"tglang/internal/platform/logger"
	"tglang/internal/platform/metrics"
	"tglang/internal/platform/store"
)

// cache results for metrics
const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"
)

// Options configures a Cache
type Options struct {
	TTL     time.Duration
	Timeout time.Duration
	Metrics *metrics.Metrics
	// Model fingerprints the loaded artifact so a swapped model never reads old entries
	Model string
}

// OptionsFromConfig reads SERVICE_REDIS_TTL and SERVICE_REDIS_TIMEOUT
func OptionsFromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("SERVICE_REDIS_")
	return Options{
		TTL:     rc.MayDuration("TTL", 10*time.Minute),
		Timeout: rc.MayDuration("TIMEOUT", 50*time.Millisecond),
	}
}

// Cache stores JSON values keyed by snippet hash. A nil KV gives a cache that always misses
type Cache struct {
	kv  store.KV
	opt Options
	log *logger.Logger
}

// New builds a cache over kv, which may be nil
func New(kv store.KV, opt Options) *Cache {
	if opt.TTL <= 0 {
		opt.TTL = 10 * time.Minute
	}
	return &Cache{kv: kv, opt: opt, log: logger.Named("detectcache")}
}

// Enabled reports whether a store backs the cache
func (c *Cache) Enabled() bool { return c != nil && c.kv != nil }

// Key names the entry for text under the current language set revision and model fingerprint
func Key(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	k := "tglang:v" + strconv.Itoa(language.SetVersion) + ":"
	if model != "" {
		k += model[:min(len(model), 16)] + ":"
	}
	return k + hex.EncodeToString(sum[:])
}

// Get decodes the entry for text into dst and reports whether it was found
func (c *Cache) Get(ctx context.Context, text string, dst any) bool {
	if !c.Enabled() {
		return false
	}
	ctx, cancel := c.bound(ctx)
	defer cancel()

	raw, err := c.kv.Get(ctx, Key(c.opt.Model, text))
	switch {
	case perr.IsCode(err, perr.ErrorCodeNotFound):
		c.opt.Metrics.Cache(ResultMiss)
		return false
	case err != nil:
		c.opt.Metrics.Cache(ResultError)
		logger.C(ctx).Warn().Err(err).Msg("detect cache get failed")
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.opt.Metrics.Cache(ResultError)
		c.log.Warn().Err(err).Msg("detect cache entry undecodable")
		return false
	}
	c.opt.Metrics.Cache(ResultHit)
	return true
}

// Put stores v for text; failures are logged only
func (c *Cache) Put(ctx context.Context, text string, v any) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Msg("detect cache encode failed")
		return
	}
	ctx, cancel := c.bound(ctx)
	defer cancel()
	if err := c.kv.Set(ctx, Key(c.opt.Model, text), raw, c.opt.TTL); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("detect cache set failed")
	}
}

func (c *Cache) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opt.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.opt.Timeout)
}
