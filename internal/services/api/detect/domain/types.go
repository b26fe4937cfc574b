// Package domain defines the detect API payloads and ports
package domain

import (
	"context"

	"tglang/internal/core/language"
)

// DetectInput is the single snippet request
type DetectInput struct {
	Text string `json:"text" validate:"required" example:"package main\n\nfunc main() {}"`
}

// BatchInput classifies up to 256 snippets in one call
type BatchInput struct {
	Texts []string `json:"texts" validate:"required,min=1,max=256"`
}

// Detection is one classified snippet
type Detection struct {
	Language    language.Language `json:"language"     swaggertype:"string" example:"GO"`
	Code        int               `json:"code"         example:"39"`
	DisplayName string            `json:"display_name" example:"Go"`
	Probability float64           `json:"probability"  example:"0.97"`
	Outcome     string            `json:"outcome"      example:"accepted"`
	Script      string            `json:"script"       example:"Latin"`
}

// BatchResult keeps input order
type BatchResult struct {
	Items []Detection `json:"items"`
}

// LanguageInfo describes one enumeration entry
type LanguageInfo struct {
	Code        int    `json:"code"         example:"39"`
	Name        string `json:"name"         example:"GO"`
	DisplayName string `json:"display_name" example:"Go"`
}

// LanguagesResult is the enumeration and its revision
type LanguagesResult struct {
	SetVersion int            `json:"set_version" example:"1"`
	Languages  []LanguageInfo `json:"languages"`
}

// DetectorPort lets other modules classify text through the same path as the API
type DetectorPort interface {
	Detect(ctx context.Context, text string) (Detection, error)
}
