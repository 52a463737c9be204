package wire

import (
	"lms-backend/internal/adaptor"
	"lms-backend/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireAsset(r chi.Router, assetHandler *adaptor.AssetHandler, g guards) {
	r.Route("/api/assets", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/logo", assetHandler.GetLogo)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.auth)
			r.Use(middleware.Admin())

			r.Get("/", assetHandler.List)
			r.Put("/logo", assetHandler.UpdateLogo)
		})
	})
}
