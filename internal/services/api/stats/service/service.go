// Package service contains stats workflows
package service

import (
	"context"
	"slices"
	"time"

	perr "tglang/internal/platform/errors"
	ptime "tglang/internal/platform/time"
	"tglang/internal/services/api/stats/domain"
	journal "tglang/internal/services/journal/domain"
)

// Svc implements the stats service
type Svc struct {
	q   journal.QueryPort
	now func() time.Time
}

// New constructs a stats service; a nil port answers Unavailable
func New(q journal.QueryPort) *Svc { return &Svc{q: q, now: time.Now} }

// Languages counts journaled detections per language over the last days
func (s *Svc) Languages(ctx context.Context, days int) (domain.LanguagesResult, error) {
	if s.q == nil {
		return domain.LanguagesResult{}, perr.Unavailablef("detection journal is disabled")
	}
	since, until := ptime.LastDays(s.now(), days)
	rows, err := s.q.CountByLanguage(ctx, journal.Window{Since: since, Until: until})
	if err != nil {
		return domain.LanguagesResult{}, perr.WithOp(err, "stats.languages")
	}

	out := domain.LanguagesResult{
		Since:     since.Format(time.RFC3339),
		Until:     until.Format(time.RFC3339),
		Days:      days,
		Languages: make([]domain.LanguageRow, 0, len(rows)),
	}
	for _, r := range rows {
		out.Total += r.Count
	}
	for _, r := range rows {
		row := domain.LanguageRow{
			Language:    r.Language,
			Code:        r.Code,
			DisplayName: r.Language.DisplayName(),
			Count:       r.Count,
		}
		if out.Total > 0 {
			row.Share = float64(r.Count) / float64(out.Total)
		}
		out.Languages = append(out.Languages, row)
	}
	slices.SortStableFunc(out.Languages, func(a, b domain.LanguageRow) int {
		switch {
		case a.Count > b.Count:
			return -1
		case a.Count < b.Count:
			return 1
		}
		return a.Code - b.Code
	})
	return out, nil
}
