// Package repo stores journal events in ClickHouse
package repo

import (
	"context"

	"tglang/internal/core/language"
	"tglang/internal/modkit/repokit"
	perr "tglang/internal/platform/errors"
	"tglang/internal/services/journal/domain"

	"fortio.org/safecast"
)

// Table is the events table name
const Table = "detections"

// Columns in insert order
var Columns = []string{
	"ts", "request_id", "language", "code", "probability", "outcome",
	"script", "input_bytes", "normalized_bytes", "elapsed_us",
}

const schema = `CREATE TABLE IF NOT EXISTS detections (
	ts               DateTime64(3),
	request_id       String,
	language         LowCardinality(String),
	code             UInt16,
	probability      Float32,
	outcome          LowCardinality(String),
	script           LowCardinality(String),
	input_bytes      UInt32,
	normalized_bytes UInt32,
	elapsed_us       UInt32
) ENGINE = MergeTree
PARTITION BY toYYYYMM(ts)
ORDER BY (ts, language)
TTL toDateTime(ts) + INTERVAL 90 DAY`

const countByLanguage = `SELECT code, count() AS n
FROM detections
WHERE ts >= ? AND ts < ?
GROUP BY code
ORDER BY n DESC, code`

// Storage is the journal repository
type Storage interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, xs []domain.Event) error
	CountByLanguage(ctx context.Context, w domain.Window) ([]domain.LanguageCount, error)
}

type ch struct{ db repokit.Columnar }

// NewCH binds the repository to a ClickHouse seam
func NewCH(db repokit.Columnar) Storage {
	if db == nil {
		panic("journal repo: nil clickhouse")
	}
	return &ch{db: db}
}

// EnsureSchema creates the events table if missing
func (s *ch) EnsureSchema(ctx context.Context) error {
	return s.db.Exec(ctx, schema)
}

// Insert writes xs as one batch
func (s *ch) Insert(ctx context.Context, xs []domain.Event) error {
	if len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, e := range xs {
		r, err := Row(e)
		if err != nil {
			return err
		}
		rows = append(rows, r)
	}
	return s.db.Insert(ctx, Table, Columns, rows)
}

// CountByLanguage counts events per language inside w, most frequent first
func (s *ch) CountByLanguage(ctx context.Context, w domain.Window) ([]domain.LanguageCount, error) {
	rows, err := s.db.Query(ctx, countByLanguage, w.Since.UTC(), w.Until.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.LanguageCount{}
	for rows.Next() {
		var (
			code uint16
			n    uint64
		)
		if err := rows.Scan(&code, &n); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan language count")
		}
		lang := language.FromCode(int(code))
		out = append(out, domain.LanguageCount{Language: lang, Code: lang.Code(), Count: n})
	}
	return out, rows.Err()
}

// Row renders e in Columns order with the column types ClickHouse expects
func Row(e domain.Event) ([]any, error) {
	code, err := safecast.Conv[uint16](e.Language.Code())
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "language code %d", e.Language.Code())
	}
	in, err := safecast.Conv[uint32](e.InputBytes)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "input_bytes")
	}
	norm, err := safecast.Conv[uint32](e.NormalizedBytes)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "normalized_bytes")
	}
	us, err := safecast.Conv[uint32](e.Elapsed.Microseconds())
	if err != nil {
		// over an hour, clamp
		us = ^uint32(0)
	}
	return []any{
		e.TS.UTC(),
		e.RequestID,
		e.Language.String(),
		code,
		float32(e.Probability),
		e.Outcome,
		e.Script,
		in,
		norm,
		us,
	}, nil
}
