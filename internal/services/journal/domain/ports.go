package domain

import "context"

// RecorderPort accepts events without blocking the caller; events may be dropped under load
type RecorderPort interface {
	Record(e Event)
}

// QueryPort reads aggregates back
type QueryPort interface {
	CountByLanguage(ctx context.Context, w Window) ([]LanguageCount, error)
}

// Nop is the recorder used when the journal store is disabled
type Nop struct{}

// Record drops e
func (Nop) Record(Event) {}
