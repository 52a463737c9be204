package wire

import (
	"lms-backend/internal/adaptor"
	"lms-backend/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireEnrollment(r chi.Router, enrollmentHandler *adaptor.EnrollmentHandler, g guards) {
	r.Route("/api/enrollments", func(r chi.Router) {
		r.Use(g.auth)

		// ==================== LEARNER ROUTES ====================
		r.Post("/", enrollmentHandler.Enroll)
		r.Get("/my-enrollments", enrollmentHandler.MyEnrollments)
		r.Get("/check/{courseId}", enrollmentHandler.Check)
		r.Get("/course/{courseId}", enrollmentHandler.ListByCourse)
		r.Post("/{id}/request-completion", enrollmentHandler.RequestCompletion)
		r.Put("/{id}/progress", enrollmentHandler.UpdateProgress)
		r.Delete("/{id}", enrollmentHandler.Delete)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Admin())

			r.Get("/", enrollmentHandler.ListAll)
			r.Get("/pending-approval", enrollmentHandler.ListPending)
			r.Get("/completed", enrollmentHandler.ListCompleted)
			r.Get("/stats", enrollmentHandler.Stats)
			r.Post("/{id}/approve", enrollmentHandler.Approve)
			r.Post("/{id}/reject", enrollmentHandler.Reject)
		})
	})
}
