package wire

import (
	"lms-backend/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireLesson: reads are public; editor and ownership checks for writes live
// in the service.
func wireLesson(r chi.Router, lessonHandler *adaptor.LessonHandler, g guards) {
	r.Route("/api/lessons", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.optional)

			r.Get("/course/{courseId}", lessonHandler.ListByCourse)
			r.Get("/{id}", lessonHandler.Get)
		})

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.auth)

			r.Post("/course/{courseId}", lessonHandler.Create)
			r.Put("/reorder/{courseId}", lessonHandler.Reorder)
			r.Put("/{id}", lessonHandler.Update)
			r.Delete("/{id}", lessonHandler.Delete)
		})
	})
}
