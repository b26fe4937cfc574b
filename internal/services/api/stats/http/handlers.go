// Package http provides http transport for stats
package http

import (
	stdhttp "net/http"
	"strconv"

	"tglang/internal/modkit/httpkit"
	perr "tglang/internal/platform/errors"
	"tglang/internal/services/api/stats/domain"
	svc "tglang/internal/services/api/stats/service"
)

// DefaultDays is the window when ?days is absent
const DefaultDays = 7

// Register mounts stats endpoints on the given router
func Register(r httpkit.Router, s *svc.Svc) {
	h := &handlers{svc: s}

	// detections per language in the last N days
	httpkit.Get(r, "/languages", h.languages)
}

type handlers struct{ svc *svc.Svc }

// swagger:route GET /stats/languages Stats statsLanguages
// @Summary Detections per language over the last N days
// @Tags Stats
// @Produce json
// @Param days query int false "Window in days, 1 to 90" default(7)
// @Success 200 {object} domain.LanguagesResult "ok"
// @Failure 400 {object} httpkit.Envelope "bad window"
// @Failure 503 {object} httpkit.Envelope "journal disabled"
// @Router /stats/languages [get]
func (h *handlers) languages(r *stdhttp.Request) (any, error) {
	q := domain.LanguagesQuery{Days: DefaultDays}
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "days must be an integer"), "days")
		}
		q.Days = n
	}
	if err := httpkit.Validate(q); err != nil {
		return nil, err
	}
	return h.svc.Languages(r.Context(), q.Days)
}
