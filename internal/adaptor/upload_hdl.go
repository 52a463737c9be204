package adaptor

import (
	"errors"
	"net/http"

	"lms-backend/internal/dto/request"
	"lms-backend/internal/usecase"
	"lms-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxUploadBody covers the base64 expansion of the largest accepted file.
const maxUploadBody = usecase.MaxUploadSize*4/3 + 1<<20

type UploadHandler struct {
	service usecase.UploadService
	log     *zap.Logger
}

func NewUploadHandler(service usecase.UploadService, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		log:     log.With(zap.String("handler", "upload")),
	}
}

// UploadBase64 handles POST /api/upload/base64. Field checks happen in the
// service so that missing fields produce a single message.
func (h *UploadHandler) UploadBase64(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)

	var req request.Base64UploadRequest
	if err := decodeJSON(r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseTooLarge(w, "File too large. Maximum size is 10MB")
			return
		}
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	upload, err := h.service.UploadBase64(r.Context(), actorFrom(r), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "upload file")
		return
	}

	utils.ResponseSuccess(w, "File uploaded successfully", upload)
}

// Get handles GET /api/upload/{key...} by redirecting to the object's public URL.
func (h *UploadHandler) Get(w http.ResponseWriter, r *http.Request) {
	url, err := h.service.Locate(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		handleServiceError(h.log, w, err, "get file")
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

// Delete handles DELETE /api/upload/{key...} (admin only)
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFrom(r), chi.URLParam(r, "*")); err != nil {
		handleServiceError(h.log, w, err, "delete file")
		return
	}

	utils.ResponseSuccess(w, "File deleted successfully", nil)
}
