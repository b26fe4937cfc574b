package store

import (
	"time"

	"tglang/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG    PGConfig
	CH    CHConfig
	Redis RedisConfig

	// Retry governs the startup ping loop shared by every backend
	Retry RetryConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string
	// Role and Tag end up in system.query_log client info
	Role string
	Tag  string
}

// RedisConfig configures redis connectivity
type RedisConfig struct {
	Enabled bool
	URL     string
}

// RetryConfig bounds how long Open waits for a backend to come up
type RetryConfig struct {
	Attempts    int
	PingTimeout time.Duration
	Backoff     time.Duration
	MaxBackoff  time.Duration
}

func (r RetryConfig) withDefaults() RetryConfig {
	if r.Attempts <= 0 {
		r.Attempts = 20
	}
	if r.PingTimeout <= 0 {
		r.PingTimeout = 3 * time.Second
	}
	if r.Backoff <= 0 {
		r.Backoff = 150 * time.Millisecond
	}
	if r.MaxBackoff < r.Backoff {
		r.MaxBackoff = 2 * time.Second
	}
	return r
}

// ConfigFromEnv reads SERVICE_* settings; URLs are only required for enabled backends
func ConfigFromEnv(appName string) Config {
	pg := config.New().Prefix("SERVICE_PGSQL_")
	ch := config.New().Prefix("SERVICE_CLICKHOUSE_")
	rd := config.New().Prefix("SERVICE_REDIS_")

	cfg := Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:     pg.MayBool("ENABLED", false),
			MaxConns:    int32(pg.MayInt("MAX_CONNS", 8)),
			LogSQL:      pg.MayBool("LOG_SQL", false),
			SlowQueryMs: pg.MayInt("SLOW_MS", 250),
		},
		CH: CHConfig{
			Enabled: ch.MayBool("ENABLED", false),
			Role:    appName,
			Tag:     ch.MayString("CLIENT_TAG", "tglang"),
		},
		Redis: RedisConfig{
			Enabled: rd.MayBool("ENABLED", false),
		},
		Retry: RetryConfig{
			Attempts: config.New().Prefix("SERVICE_").MayInt("CONNECT_RETRIES", 20),
		},
	}
	if cfg.PG.Enabled {
		cfg.PG.URL = pg.MustString("DBURL")
	}
	if cfg.CH.Enabled {
		cfg.CH.URL = ch.MustString("DBURL")
	}
	if cfg.Redis.Enabled {
		cfg.Redis.URL = rd.MustString("URL")
	}
	return cfg
}
