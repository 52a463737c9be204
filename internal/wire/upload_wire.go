package wire

import (
	"lms-backend/internal/adaptor"
	"lms-backend/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

// wireUpload: object keys contain slashes, so file routes take the rest of the path.
func wireUpload(r chi.Router, uploadHandler *adaptor.UploadHandler, g guards) {
	r.Route("/api/upload", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/*", uploadHandler.Get)

		// ==================== PROTECTED ROUTES ====================
		r.With(g.auth).Post("/base64", uploadHandler.UploadBase64)
		r.With(g.auth, middleware.Admin()).Delete("/*", uploadHandler.Delete)
	})
}
