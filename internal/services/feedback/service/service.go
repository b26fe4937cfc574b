// Package service validates and stores detection feedback
package service

import (
	"context"
	"strings"
	"time"

	"tglang/internal/modkit/repokit"
	perr "tglang/internal/platform/errors"
	"tglang/internal/services/feedback/domain"

	"github.com/google/uuid"
)

// Config for the feedback service
type Config struct {
	// HardLimit caps Recent
	HardLimit int
	// StatementTimeout bounds each write transaction, 0 disables
	StatementTimeout time.Duration
}

// Svc implements domain.ServicePort
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
	cfg    Config

	now   func() time.Time
	newID func() (uuid.UUID, error)
}

// New constructs the feedback service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo], cfg Config) *Svc {
	if db == nil {
		panic("feedback.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("feedback.Service requires a non-nil Repo binder")
	}
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 100
	}
	return &Svc{
		db:     repokit.WithBeginHooks(db, repokit.StatementTimeout(cfg.StatementTimeout)),
		binder: binder,
		cfg:    cfg,
		now:    time.Now,
		newID:  uuid.NewV7,
	}
}

// EnsureSchema creates the storage table
func (s *Svc) EnsureSchema(ctx context.Context) error {
	return repokit.MustBind(s.binder, s.db).EnsureSchema(ctx)
}

// Create stores a correction. Expected must differ from Detected, otherwise it is not a correction
func (s *Svc) Create(ctx context.Context, in domain.NewFeedback) (domain.Feedback, error) {
	if strings.TrimSpace(in.Text) == "" {
		return domain.Feedback{}, perr.WithField(perr.New(perr.ErrorCodeValidation, "text is a required field"), "text")
	}
	if !in.Detected.Valid() || !in.Expected.Valid() {
		return domain.Feedback{}, perr.InvalidArgf("language outside the enumeration")
	}
	if in.Detected == in.Expected {
		return domain.Feedback{}, perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "expected equals detected language %s", in.Expected), "expected")
	}

	id, err := s.newID()
	if err != nil {
		return domain.Feedback{}, perr.Wrap(err, perr.ErrorCodeUnknown, "generate feedback id")
	}
	f := domain.Feedback{
		ID:        id,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
		Text:      in.Text,
		Detected:  in.Detected,
		Expected:  in.Expected,
		Note:      strings.TrimSpace(in.Note),
	}
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		return repokit.MustBind(s.binder, q).Insert(ctx, f)
	})
	if err != nil {
		return domain.Feedback{}, perr.WithOp(err, "feedback.create")
	}
	return f, nil
}

// Get loads one correction
func (s *Svc) Get(ctx context.Context, id uuid.UUID) (domain.Feedback, error) {
	return repokit.MustBind(s.binder, s.db).Get(ctx, id)
}

// Recent lists the newest corrections; limit is clamped to 1..HardLimit
func (s *Svc) Recent(ctx context.Context, limit int) ([]domain.Feedback, error) {
	if limit <= 0 || limit > s.cfg.HardLimit {
		limit = s.cfg.HardLimit
	}
	return repokit.MustBind(s.binder, s.db).Recent(ctx, limit)
}
