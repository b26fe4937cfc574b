package modkit

import (
	"tglang/internal/core/resources"
	"tglang/internal/modkit/repokit"
	"tglang/internal/platform/config"
	"tglang/internal/platform/logger"
	"tglang/internal/platform/metrics"
	"tglang/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// storage fields are nil when the backend is disabled; modules answer 503 for those paths
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	Res     *resources.Resources
	Metrics *metrics.Metrics

	PG    repokit.TxRunner
	CH    store.Clickhouse
	Redis store.KV
}

// FromStore fills the storage fields from an opened store
func (d Deps) FromStore(s *store.Store) Deps {
	if s == nil {
		return d
	}
	d.PG = s.PG
	d.CH = s.CH
	d.Redis = s.Redis
	return d
}
