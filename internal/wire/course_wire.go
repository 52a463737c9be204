package wire

import (
	"lms-backend/internal/adaptor"
	"lms-backend/internal/data/entity"
	"lms-backend/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireCourse(r chi.Router, courseHandler *adaptor.CourseHandler, g guards) {
	r.Route("/api/courses", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// Visibility depends on the caller when a token is present.
		r.With(g.optional).Get("/", courseHandler.List)
		r.Get("/{id}", courseHandler.Get)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.auth)

			r.Get("/user-courses", courseHandler.ListForUser)
			r.Get("/instructor/{id}", courseHandler.ListByInstructor)
			r.Post("/", courseHandler.Create)
			r.Put("/{id}", courseHandler.Update)
			r.Delete("/{id}", courseHandler.Delete)

			r.With(middleware.RequireRole(entity.RoleAdmin, entity.RoleGeneral)).
				Patch("/{id}/activate", courseHandler.Activate)
			r.With(middleware.RequireRole(entity.RoleAdmin, entity.RoleGeneral)).
				Patch("/{id}/deactivate", courseHandler.Deactivate)
		})
	})
}
