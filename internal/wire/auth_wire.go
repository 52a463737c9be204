package wire

import (
	"lms-backend/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, g guards) {
	r.Route("/api/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/register", authHandler.Register)
		r.Post("/verify-registration", authHandler.VerifyRegistration)
		r.Post("/login", authHandler.Login)
		r.Post("/verify-login", authHandler.VerifyLogin)
		r.Post("/resend-otp", authHandler.ResendOTP)
		r.Post("/admin-login", authHandler.AdminLogin)

		// ==================== PROTECTED ROUTES ====================
		r.With(g.auth).Get("/me", authHandler.Me)
		r.With(g.auth).Post("/logout", authHandler.Logout)
	})
}
