package module

import (
	"tglang/internal/platform/config"
	svc "tglang/internal/services/api/detect/service"
)

// Options are the detect module settings
type Options struct {
	Service   svc.Config
	BodyLimit int64
	BatchBody int64
}

// FromConfig reads CORE_TGLANG_MAX_INPUT_BYTES and CORE_API_BATCH_*.
// The API always bounds input; without an explicit limit it uses 1 MiB
func FromConfig(cfg config.Conf) Options {
	maxIn := cfg.Prefix("CORE_TGLANG_").MayBytes("MAX_INPUT_BYTES", 0)
	if maxIn <= 0 {
		maxIn = 1 << 20
	}
	api := cfg.Prefix("CORE_API_")
	return Options{
		Service: svc.Config{
			MaxInputBytes: maxIn,
			BatchWorkers:  api.MayInt("BATCH_WORKERS", 0),
		},
		// json escaping may grow a byte up to six
		BodyLimit: int64(maxIn)*6 + 1024,
		BatchBody: int64(api.MayBytes("BATCH_MAX_BODY", 16<<20)),
	}
}
