// Package repo stores feedback in Postgres
package repo

import (
	"context"

	"tglang/internal/core/language"
	"tglang/internal/modkit/repokit"
	perr "tglang/internal/platform/errors"
	"tglang/internal/platform/store"
	str "tglang/internal/platform/strings"
	"tglang/internal/services/feedback/domain"

	"github.com/google/uuid"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[domain.Repo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.Repo { return &pg{q: q} }

const schema = `
CREATE TABLE IF NOT EXISTS detection_feedback (
	id         uuid PRIMARY KEY,
	created_at timestamptz NOT NULL DEFAULT now(),
	text       text NOT NULL,
	detected   text NOT NULL,
	expected   text NOT NULL,
	note       text
);
CREATE INDEX IF NOT EXISTS detection_feedback_created_at_idx
	ON detection_feedback (created_at DESC, id);`

const selectCols = `SELECT id, created_at, text, detected, expected, coalesce(note, '') FROM detection_feedback`

// EnsureSchema creates the table and index if missing
func (s *pg) EnsureSchema(ctx context.Context) error {
	_, err := s.q.Exec(ctx, schema)
	return perr.FromPostgres(err, "ensure feedback schema")
}

// Insert stores f; a reused id is a DuplicateKey error
func (s *pg) Insert(ctx context.Context, f domain.Feedback) error {
	err := store.ExecOne(ctx, s.q, `
		INSERT INTO detection_feedback (id, created_at, text, detected, expected, note)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, f.CreatedAt, f.Text, f.Detected.String(), f.Expected.String(), str.SQLNull(f.Note),
	)
	return perr.FromPostgres(err, "insert feedback")
}

// Get loads one row by id
func (s *pg) Get(ctx context.Context, id uuid.UUID) (domain.Feedback, error) {
	f, err := store.One(ctx, s.q, scan, selectCols+` WHERE id = $1`, id)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return f, perr.NotFoundf("feedback %s not found", id)
	}
	return f, perr.FromPostgres(err, "get feedback")
}

// Recent lists the newest rows first
func (s *pg) Recent(ctx context.Context, limit int) ([]domain.Feedback, error) {
	out, err := store.Many(ctx, s.q, scan, selectCols+` ORDER BY created_at DESC, id LIMIT $1`, limit)
	return out, perr.FromPostgres(err, "list feedback")
}

func scan(r store.Row) (domain.Feedback, error) {
	var (
		f                  domain.Feedback
		detected, expected string
	)
	if err := r.Scan(&f.ID, &f.CreatedAt, &f.Text, &detected, &expected, &f.Note); err != nil {
		return f, err
	}
	// names written by an older enumeration decode as Other
	f.Detected, _ = language.Parse(detected)
	f.Expected, _ = language.Parse(expected)
	return f, nil
}
