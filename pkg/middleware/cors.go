package middleware

import (
	"net/http"
	"time"

	"lms-backend/pkg/utils"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// CORS allows the given origins; "*" or an empty list allows any origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	allowAll := len(origins) == 1 && origins[0] == "*"

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: !allowAll,
		MaxAge:           300,
	})
}

// RateLimit caps each client IP at requests per window.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.ResponseTooManyRequests(w, "Too many requests from this IP, please try again later.")
		}),
	)
}
