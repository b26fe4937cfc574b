// Package http provides http transport for detection feedback
package http

import (
	stdhttp "net/http"
	"strconv"
	"sync"

	"tglang/internal/core/language"
	"tglang/internal/modkit/httpkit"
	perr "tglang/internal/platform/errors"
	detect "tglang/internal/services/api/detect/domain"
	"tglang/internal/services/api/feedback/domain"
	fb "tglang/internal/services/feedback/domain"

	"github.com/google/uuid"
)

// DefaultLimit is the list size when ?limit is absent
const DefaultLimit = 20

var registerTag sync.Once

// Register mounts feedback endpoints. A nil svc answers 503; a nil det makes detected required
func Register(r httpkit.Router, s fb.ServicePort, det detect.DetectorPort) {
	registerTag.Do(func() {
		_ = httpkit.RegisterValidation("language", "{0} must be a language name or code", validLanguage)
	})
	h := &handlers{svc: s, det: det}

	r.Post("/", httpkit.Handle(h.create))
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
}

type handlers struct {
	svc fb.ServicePort
	det detect.DetectorPort
}

// swagger:route POST /feedback Feedback feedbackCreate
// @Summary Store a correction of a detected language
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Correction"
// @Success 201 {object} fb.Feedback "created"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Failure 503 {object} httpkit.Envelope "feedback store disabled"
// @Router /feedback [post]
func (h *handlers) create(r *stdhttp.Request) httpkit.Response {
	if h.svc == nil {
		return httpkit.Error(disabled())
	}
	in, err := httpkit.Parse[domain.CreateInput](r, httpkit.JSONOptions{MaxBytes: 1 << 20})
	if err != nil {
		return httpkit.Error(err)
	}

	expected, _ := language.Parse(in.Expected)
	var detected language.Language
	switch {
	case in.Detected != "":
		detected, _ = language.Parse(in.Detected)
	case h.det != nil:
		d, err := h.det.Detect(r.Context(), in.Text)
		if err != nil {
			return httpkit.Error(err)
		}
		detected = d.Language
	default:
		return httpkit.Error(perr.WithField(perr.New(perr.ErrorCodeValidation, "detected is a required field"), "detected"))
	}

	f, err := h.svc.Create(r.Context(), fb.NewFeedback{Text: in.Text, Detected: detected, Expected: expected, Note: in.Note})
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Created(f)
}

// swagger:route GET /feedback Feedback feedbackList
// @Summary Most recent corrections
// @Tags Feedback
// @Produce json
// @Param limit query int false "Rows, capped by the server" default(20)
// @Success 200 {object} domain.ListResult "ok"
// @Router /feedback [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	if h.svc == nil {
		return nil, disabled()
	}
	limit := DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, perr.WithField(perr.New(perr.ErrorCodeValidation, "limit must be a positive integer"), "limit")
		}
		limit = n
	}
	items, err := h.svc.Recent(r.Context(), limit)
	if err != nil {
		return nil, err
	}
	return domain.ListResult{Items: items}, nil
}

// swagger:route GET /feedback/{id} Feedback feedbackGet
// @Summary One correction by id
// @Tags Feedback
// @Produce json
// @Param id path string true "Feedback id"
// @Success 200 {object} fb.Feedback "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /feedback/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	if h.svc == nil {
		return nil, disabled()
	}
	id, err := uuid.Parse(httpkit.Param(r, "id"))
	if err != nil {
		return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "id is not a uuid"), "id")
	}
	return h.svc.Get(r.Context(), id)
}

func disabled() error { return perr.Unavailablef("feedback store is disabled") }

func validLanguage(fl httpkit.FieldLevel) bool {
	_, err := language.Parse(fl.Field().String())
	return err == nil
}
