package booking

import "github.com/go-chi/chi/v5"

// Routes returns booking modal router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.View)
	r.Post("/open", h.Open)
	r.Put("/draft", h.UpdateDraft)
	r.Post("/confirm", h.Confirm)
	r.Post("/close", h.Close)

	return r
}

// ReviewRoutes returns bookings review router
func (h *Handler) ReviewRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}
