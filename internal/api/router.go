package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter wires the HTTP surface. authSecret enables the JWT middleware
// when non-empty; otherwise the API is open.
func NewRouter(h *APIHandler, authSecret string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(requestLogger(logger))

	r.Get("/health", h.HealthHandler)

	r.Group(func(r chi.Router) {
		if authSecret != "" {
			r.Use(h.JWTAuthMiddleware(authSecret))
		}

		r.Post("/chat/{userID}", h.StoreChatHandler)
		r.Post("/profile/{userID}", h.SetProfileHandler)
		r.Get("/summarize/{userID}", h.SummarizeHandler)
		r.Get("/get_riddle/{userID}", h.GetRiddleHandler)
		r.Post("/verify_answer/{userID}", h.VerifyAnswerHandler)
	})

	return r
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("Request handled")
		})
	}
}
