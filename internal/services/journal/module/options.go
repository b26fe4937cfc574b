package module

import (
	"time"

	"tglang/internal/platform/config"
)

// Options holds configuration settings for the journal module
type Options struct {
	BatchSize     int
	FlushInterval time.Duration
	Buffer        int
	// EnsureSchema creates the table on startup
	EnsureSchema bool
}

// FromConfig reads CORE_JOURNAL_* settings
func FromConfig(cfg config.Conf) Options {
	jc := cfg.Prefix("CORE_JOURNAL_")
	return Options{
		BatchSize:     jc.MayInt("BATCH_SIZE", 500),
		FlushInterval: jc.MayDuration("FLUSH_INTERVAL", 2*time.Second),
		Buffer:        jc.MayInt("BUFFER", 10000),
		EnsureSchema:  jc.MayBool("ENSURE_SCHEMA", true),
	}
}
