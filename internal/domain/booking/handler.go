package booking

import (
	"context"
	"errors"
	"net/http"

	"github.com/mwork/studiofinder/internal/domain/studio"
	"github.com/mwork/studiofinder/internal/middleware"
	"github.com/mwork/studiofinder/internal/pkg/errorhandler"
	"github.com/mwork/studiofinder/internal/pkg/logger"
	"github.com/mwork/studiofinder/internal/pkg/response"
	"github.com/mwork/studiofinder/internal/pkg/validator"
)

// Sessions resolves the per-session booking state.
type Sessions interface {
	Directory(ctx context.Context, sessionID string) (*studio.Directory, error)
	Modal(ctx context.Context, sessionID string) (*Modal, error)
	Review(ctx context.Context, sessionID string) (*Review, error)
}

// Handler exposes the booking modal and bookings review over HTTP.
type Handler struct {
	sessions Sessions
}

// NewHandler creates booking handler
func NewHandler(sessions Sessions) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) modal(w http.ResponseWriter, r *http.Request) (*Modal, bool) {
	m, err := h.sessions.Modal(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		response.NotFound(w, "session not found")
		return nil, false
	}
	return m, true
}

// View handles GET /booking
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	m, ok := h.modal(w, r)
	if !ok {
		return
	}
	response.OK(w, m.View())
}

// Open handles POST /booking/open
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OpenRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	dir, err := h.sessions.Directory(ctx, middleware.GetSessionID(ctx))
	if err != nil {
		response.NotFound(w, "session not found")
		return
	}
	s, err := dir.Studio(req.StudioID)
	if err != nil {
		response.NotFound(w, "Studio not found")
		return
	}

	m, ok := h.modal(w, r)
	if !ok {
		return
	}
	m.Open(s)
	response.OK(w, m.View())
}

// UpdateDraft handles PUT /booking/draft
func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	m, ok := h.modal(w, r)
	if !ok {
		return
	}

	var req DraftRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	if err := m.SetDraft(req.ToDraft()); err != nil {
		response.ErrorWithData(w, http.StatusConflict, response.CodeModalClosed, msgModalClosed, m.View())
		return
	}
	response.OK(w, m.View())
}

// Confirm handles POST /booking/confirm. A body, when present, replaces the
// form before confirming.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	m, ok := h.modal(w, r)
	if !ok {
		return
	}

	if r.ContentLength > 0 {
		var req DraftRequest
		if err := response.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, "invalid JSON body")
			return
		}
		if errs := validator.Validate(&req); errs != nil {
			errorhandler.LogValidationError(r.Context(), errs)
			response.ValidationError(w, errs)
			return
		}
		if err := m.SetDraft(req.ToDraft()); err != nil {
			response.ErrorWithData(w, http.StatusConflict, response.CodeModalClosed, msgModalClosed, m.View())
			return
		}
	}

	err := m.Confirm(r.Context())
	switch {
	case err == nil:
		response.OK(w, m.View())
	case errors.Is(err, ErrMissingFields):
		response.ErrorWithData(w, http.StatusUnprocessableEntity, response.CodeValidation, msgFillAllFields, m.View())
	case errors.Is(err, ErrSlotUnavailable):
		errorhandler.HandleErrorWithData(r.Context(), w, http.StatusConflict, response.CodeSlotUnavailable, msgSlotUnavailable, err, m.View())
	case errors.Is(err, ErrModalClosed):
		response.ErrorWithData(w, http.StatusConflict, response.CodeModalClosed, msgModalClosed, m.View())
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, response.CodeInternal, "Failed to save booking", err)
	}
}

// Close handles POST /booking/close
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	m, ok := h.modal(w, r)
	if !ok {
		return
	}
	m.Close()
	response.OK(w, m.View())
}

// List handles GET /bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	review, err := h.sessions.Review(ctx, middleware.GetSessionID(ctx))
	if err != nil {
		response.NotFound(w, "session not found")
		return
	}

	rows, err := review.List(ctx)
	if err != nil {
		logger.LogError(ctx, err, "Failed to load bookings")
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]interface{}{
		"bookings": rows,
		"total":    len(rows),
	})
}
