package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mwork/studiofinder/internal/pkg/logger"
	"github.com/mwork/studiofinder/internal/pkg/response"
)

// SessionHeader carries the client session identifier in both directions.
const SessionHeader = "X-Session-ID"

type sessionIDKey struct{}

// SessionResolver returns the id of a live session for the presented id,
// creating a new session when the presented one is empty or unknown.
type SessionResolver interface {
	Resolve(ctx context.Context, presented string) (string, error)
}

// Session binds every request to a client session and attaches a logger
// carrying the request and session ids.
func Session(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(SessionHeader)
			if presented == "" {
				presented = r.URL.Query().Get("session")
			}

			id, err := resolver.Resolve(r.Context(), presented)
			if err != nil {
				log.Error().Err(err).Str("request_id", GetRequestID(r.Context())).Msg("Failed to resolve session")
				response.InternalError(w)
				return
			}

			w.Header().Set(SessionHeader, id)
			r.Header.Set(SessionHeader, id)
			l := log.With().
				Str("request_id", GetRequestID(r.Context())).
				Str("session_id", id).
				Logger()
			ctx := context.WithValue(r.Context(), sessionIDKey{}, id)
			ctx = logger.WithContext(ctx, &l)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionID returns the session id bound by Session, or "".
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}
