// Package domain holds the feedback API payloads
package domain

import fb "tglang/internal/services/feedback/domain"

// CreateInput is a correction; detected is filled by running detection when omitted
type CreateInput struct {
	Text     string `json:"text"               validate:"required,maxbytes=65536" example:"fn main() {}"`
	Detected string `json:"detected,omitempty" validate:"omitempty,language"      example:"C"`
	Expected string `json:"expected"           validate:"required,language"       example:"RUST"`
	Note     string `json:"note,omitempty"     validate:"omitempty,max=500"       example:"rust entry point"`
}

// ListResult is the newest corrections first
type ListResult struct {
	Items []fb.Feedback `json:"items"`
}
