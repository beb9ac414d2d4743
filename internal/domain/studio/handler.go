package studio

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mwork/studiofinder/internal/middleware"
	"github.com/mwork/studiofinder/internal/pkg/errorhandler"
	"github.com/mwork/studiofinder/internal/pkg/logger"
	"github.com/mwork/studiofinder/internal/pkg/response"
	"github.com/mwork/studiofinder/internal/pkg/validator"
)

// Sessions resolves the Directory owned by a client session.
type Sessions interface {
	Directory(ctx context.Context, sessionID string) (*Directory, error)
}

// Handler exposes a session's Directory over HTTP.
type Handler struct {
	sessions Sessions
}

// NewHandler creates studio handler
func NewHandler(sessions Sessions) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) directory(w http.ResponseWriter, r *http.Request) (*Directory, bool) {
	dir, err := h.sessions.Directory(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		logger.LogWarn(r.Context(), "Session lookup failed", "error", err.Error())
		response.NotFound(w, "session not found")
		return nil, false
	}
	return dir, true
}

// View handles GET /studios
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}
	response.OK(w, dir.View())
}

// Load handles POST /studios/load
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}

	if err := dir.LoadCatalog(r.Context()); err != nil {
		errorhandler.LogExternalServiceError(r.Context(), "studio_catalog", err)
		response.ErrorWithData(w, http.StatusBadGateway, response.CodeUpstream, "Failed to load studios", dir.View())
		return
	}

	response.OK(w, dir.View())
}

// Suggestions handles GET /studios/suggestions?q=
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}

	dir.UpdateSuggestions(r.URL.Query().Get("q"))
	response.OK(w, dir.View())
}

// Search handles POST /studios/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}

	var req SearchRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	dir.ApplyTextSearch(req.Term)
	response.OK(w, dir.View())
}

// SelectSuggestion handles POST /studios/suggestions/select
func (h *Handler) SelectSuggestion(w http.ResponseWriter, r *http.Request) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}

	var req SelectSuggestionRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	dir.SelectSuggestion(req.Value)
	response.OK(w, dir.View())
}

// GoToPage handles POST /studios/pages/{page}. Out-of-range pages leave the
// view unchanged.
func (h *Handler) GoToPage(w http.ResponseWriter, r *http.Request) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}

	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		response.BadRequest(w, "page must be a number")
		return
	}

	dir.GoToPage(page)
	response.OK(w, dir.View())
}

// SetRadius handles PUT /studios/radius
func (h *Handler) SetRadius(w http.ResponseWriter, r *http.Request) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}

	var req RadiusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := dir.SetRadius(req.RadiusKm); err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	response.OK(w, dir.View())
}

// RadiusSearch handles POST /studios/radius-search. Geolocation failures are
// part of the returned view, not HTTP errors.
func (h *Handler) RadiusSearch(w http.ResponseWriter, r *http.Request) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}

	var req RadiusSearchRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	locator, ok := req.Locator()
	if !ok {
		response.BadRequest(w, "latitude and longitude, error_code or unsupported is required")
		return
	}

	if req.RadiusKm != nil {
		if err := dir.SetRadius(*req.RadiusKm); err != nil {
			response.BadRequest(w, err.Error())
			return
		}
	}

	if err := dir.SearchByRadius(r.Context(), locator); err != nil {
		logger.LogInfo(r.Context(), "Radius search without position", "error", err.Error())
	}
	response.OK(w, dir.View())
}

// GetByID handles GET /studios/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid studio id")
		return
	}

	s, err := dir.Studio(id)
	if err != nil {
		if errors.Is(err, ErrStudioNotFound) {
			response.NotFound(w, "Studio not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, s)
}
