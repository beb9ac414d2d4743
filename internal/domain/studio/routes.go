package studio

import "github.com/go-chi/chi/v5"

// Routes returns studio directory router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.View)
	r.Post("/load", h.Load)
	r.Get("/suggestions", h.Suggestions)
	r.Post("/suggestions/select", h.SelectSuggestion)
	r.Post("/search", h.Search)
	r.Post("/pages/{page}", h.GoToPage)
	r.Put("/radius", h.SetRadius)
	r.Post("/radius-search", h.RadiusSearch)
	r.Get("/{id}", h.GetByID)

	return r
}
