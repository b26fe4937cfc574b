// Package module wires the detection journal; it mounts no routes and exposes ports only
package module

import (
	"context"

	"tglang/internal/modkit"
	"tglang/internal/modkit/httpkit"
	perr "tglang/internal/platform/errors"
	"tglang/internal/platform/logger"
	"tglang/internal/services/journal/domain"
	"tglang/internal/services/journal/repo"
	"tglang/internal/services/journal/service"
)

// Ports exposed by the journal module. Query is nil when ClickHouse is disabled
type Ports struct {
	Recorder domain.RecorderPort
	Query    domain.QueryPort
}

// Module implements the journal module
type Module struct {
	ports Ports
	svc   *service.Service
	log   logger.Logger
}

// New builds the journal on deps.CH, or a no-op recorder when ClickHouse is disabled
func New(ctx context.Context, deps modkit.Deps, opts Options) (*Module, error) {
	log := deps.Log.With().Str("module", "journal").Logger()
	if deps.CH == nil {
		log.Info().Msg("clickhouse disabled, detections are not journaled")
		return &Module{ports: Ports{Recorder: domain.Nop{}}}, nil
	}

	storage := repo.NewCH(deps.CH)
	if opts.EnsureSchema {
		if err := storage.EnsureSchema(ctx); err != nil {
			return nil, perr.WithOp(err, "journal.ensure_schema")
		}
	}
	svc := service.New(storage, service.Config{
		BatchSize:     opts.BatchSize,
		FlushInterval: opts.FlushInterval,
		Buffer:        opts.Buffer,
		OnDrop:        deps.Metrics.JournalDropped,
	})
	log.Info().Int("batch", opts.BatchSize).Dur("interval", opts.FlushInterval).Msg("journal ready")
	return &Module{ports: Ports{Recorder: svc, Query: svc}, svc: svc, log: log}, nil
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "journal" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}

// Close drains buffered events
func (m *Module) Close(ctx context.Context) error {
	if m.svc == nil {
		return nil
	}
	err := m.svc.Close(ctx)
	written, dropped := m.svc.Stats()
	m.log.Info().Uint64("written", written).Uint64("dropped", dropped).Msg("journal closed")
	return err
}
