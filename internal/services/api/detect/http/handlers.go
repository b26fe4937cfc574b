// Package http provides http transport for detect
package http

import (
	stdhttp "net/http"

	"tglang/internal/modkit/httpkit"
	"tglang/internal/services/api/detect/domain"
	svc "tglang/internal/services/api/detect/service"
)

// Limits bound request bodies
type Limits struct {
	Single int64
	Batch  int64
}

// Register mounts detect endpoints on the given router
func Register(r httpkit.Router, s *svc.Service, lim Limits) {
	h := &handlers{svc: s}

	httpkit.PostJSON(r, "/", h.detect, httpkit.JSONOptions{MaxBytes: lim.Single})
	httpkit.PostJSON(r, "/batch", h.batch, httpkit.JSONOptions{MaxBytes: lim.Batch})
	httpkit.Get(r, "/languages", h.languages)
}

type handlers struct{ svc *svc.Service }

// swagger:route POST /detect Detect detect
// @Summary Detect the programming language of a snippet
// @Tags Detect
// @Accept json
// @Produce json
// @Param payload body domain.DetectInput true "Snippet"
// @Success 200 {object} domain.Detection "ok"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Failure 413 {object} httpkit.Envelope "too large"
// @Router /detect [post]
func (h *handlers) detect(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	return h.svc.Detect(r.Context(), in.Text)
}

// swagger:route POST /detect/batch Detect detectBatch
// @Summary Detect many snippets; results keep input order
// @Tags Detect
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "Snippets"
// @Success 200 {object} domain.BatchResult "ok"
// @Router /detect/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	items, err := h.svc.DetectBatch(r.Context(), in.Texts)
	if err != nil {
		return nil, err
	}
	return domain.BatchResult{Items: items}, nil
}

// swagger:route GET /detect/languages Detect detectLanguages
// @Summary List the language enumeration
// @Tags Detect
// @Produce json
// @Success 200 {object} domain.LanguagesResult "ok"
// @Router /detect/languages [get]
func (h *handlers) languages(_ *stdhttp.Request) (any, error) {
	return h.svc.Languages(), nil
}
