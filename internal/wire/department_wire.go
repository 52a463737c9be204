package wire

import (
	"lms-backend/internal/adaptor"
	"lms-backend/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireDepartment(r chi.Router, deptHandler *adaptor.DepartmentHandler, g guards) {
	r.Route("/api/departments", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// Registration forms list departments before the user has a token.
		r.Get("/", deptHandler.List)
		r.Get("/{id}", deptHandler.Get)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.auth)
			r.Use(middleware.Admin())

			r.Post("/", deptHandler.Create)
			r.Put("/{id}", deptHandler.Update)
			r.Delete("/{id}", deptHandler.Delete)
		})
	})
}
