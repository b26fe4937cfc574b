// Package domain holds DTOs for stats http and service contracts
package domain

import "tglang/internal/core/language"

// LanguagesQuery is read from the query string
type LanguagesQuery struct {
	Days int `json:"days" validate:"min=1,max=90" example:"7"`
}

// LanguageRow is one language in the window
type LanguageRow struct {
	Language    language.Language `json:"language"     swaggertype:"string" example:"PYTHON"`
	Code        int               `json:"code"         example:"73"`
	DisplayName string            `json:"display_name" example:"Python"`
	Count       uint64            `json:"count"        example:"1200"`
	Share       float64           `json:"share"        example:"0.42"`
}

// LanguagesResult is the per language breakdown, largest first
type LanguagesResult struct {
	Since     string        `json:"since" example:"2026-10-13T00:00:00Z"`
	Until     string        `json:"until" example:"2026-10-19T12:00:00Z"`
	Days      int           `json:"days"  example:"7"`
	Total     uint64        `json:"total" example:"2857"`
	Languages []LanguageRow `json:"languages"`
}
