package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/mwork/studiofinder/internal/pkg/response"
)

// Recover turns a handler panic into a 500 and logs it with the stack.
// A panic inside a session handler must not take other sessions down.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			event := log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("request_id", GetRequestID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path)
			if id := r.Header.Get(SessionHeader); id != "" {
				event = event.Str("session_id", id)
			}
			event.Msg("Panic recovered")

			response.InternalError(w)
		}()

		next.ServeHTTP(w, r)
	})
}
