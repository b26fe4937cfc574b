// Package domain defines detection feedback: a user correction of a detected language
package domain

import (
	"context"
	"time"

	"tglang/internal/core/language"

	"github.com/google/uuid"
)

// Feedback is one stored correction
type Feedback struct {
	ID        uuid.UUID         `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Text      string            `json:"text"`
	Detected  language.Language `json:"detected"`
	Expected  language.Language `json:"expected"`
	Note      string            `json:"note,omitempty"`
}

// NewFeedback is what a caller submits
type NewFeedback struct {
	Text     string
	Detected language.Language
	Expected language.Language
	Note     string
}

// Repo is the feedback storage contract, bound to a Queryer per call
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, f Feedback) error
	Get(ctx context.Context, id uuid.UUID) (Feedback, error)
	Recent(ctx context.Context, limit int) ([]Feedback, error)
}

// ServicePort is what transports call
type ServicePort interface {
	Create(ctx context.Context, in NewFeedback) (Feedback, error)
	Get(ctx context.Context, id uuid.UUID) (Feedback, error)
	Recent(ctx context.Context, limit int) ([]Feedback, error)
}
