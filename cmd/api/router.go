package main

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mwork/studiofinder/internal/domain/booking"
	"github.com/mwork/studiofinder/internal/domain/session"
	"github.com/mwork/studiofinder/internal/domain/studio"
	"github.com/mwork/studiofinder/internal/middleware"
	"github.com/mwork/studiofinder/internal/pkg/response"
)

type routerDeps struct {
	registry       *session.Registry
	hub            *session.Hub
	limiter        *middleware.RateLimiter
	allowedOrigins []string
	exposeDebug    bool
}

func newRouter(deps routerDeps) chi.Router {
	studioHandler := studio.NewHandler(deps.registry)
	bookingHandler := booking.NewHandler(deps.registry)
	sessionHandler := session.NewHandler(deps.registry, deps.hub, deps.allowedOrigins)

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(deps.allowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]interface{}{
			"status":   "ok",
			"sessions": deps.registry.Len(),
			"sockets":  deps.hub.ConnectionCount(),
		})
	})
	if deps.exposeDebug {
		r.Handle("/debug/vars", expvar.Handler())
	}

	// WebSocket endpoint, session taken from ?session=
	r.With(middleware.Session(deps.registry)).Get("/ws", sessionHandler.WebSocket)

	r.Route("/api/v1", func(r chi.Router) {
		if deps.limiter != nil {
			r.Use(deps.limiter.Limit)
		}
		r.Use(middleware.Session(deps.registry))

		r.Mount("/studios", studioHandler.Routes())
		r.Mount("/booking", bookingHandler.Routes())
		r.Mount("/bookings", bookingHandler.ReviewRoutes())
	})

	return r
}
