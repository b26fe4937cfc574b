// Package domain defines the types and ports of the detection journal
package domain

import (
	"time"

	"tglang/internal/core/language"
)

// Event is one served detection
type Event struct {
	TS              time.Time
	RequestID       string
	Language        language.Language
	Probability     float64
	Outcome         string
	Script          string
	InputBytes      int
	NormalizedBytes int
	Elapsed         time.Duration
}

// Window is a half open time range [Since, Until)
type Window struct {
	Since time.Time
	Until time.Time
}

// LanguageCount is one row of the per language breakdown
type LanguageCount struct {
	Language language.Language `json:"language"`
	Code     int               `json:"code"`
	Count    uint64            `json:"count"`
}
