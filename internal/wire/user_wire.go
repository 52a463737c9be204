package wire

import (
	"lms-backend/internal/adaptor"
	"lms-backend/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

// wireUser: profile access is self-or-admin, enforced by the service.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, g guards) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(g.auth)

		r.Get("/{id}", userHandler.Get)
		r.Put("/{id}", userHandler.Update)
		r.Put("/{id}/password", userHandler.ChangePassword)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Admin())

			r.Get("/", userHandler.List)
			r.Delete("/{id}", userHandler.Delete)
			r.Patch("/{id}/block", userHandler.Block)
			r.Patch("/{id}/unblock", userHandler.Unblock)
			r.Patch("/{id}/status", userHandler.SetStatus)
		})
	})
}
