package module

import (
	"time"

	"tglang/internal/platform/config"
	fbsvc "tglang/internal/services/feedback/service"
)

// Options are the feedback module settings
type Options struct {
	Service      fbsvc.Config
	EnsureSchema bool
}

// FromConfig reads CORE_FEEDBACK_*
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_FEEDBACK_")
	return Options{
		Service: fbsvc.Config{
			HardLimit:        c.MayInt("LIST_LIMIT", 100),
			StatementTimeout: c.MayDuration("STATEMENT_TIMEOUT", 5*time.Second),
		},
		EnsureSchema: c.MayBool("ENSURE_SCHEMA", true),
	}
}
