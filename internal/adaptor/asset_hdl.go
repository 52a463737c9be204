package adaptor

import (
	"errors"
	"net/http"

	"lms-backend/internal/dto/request"
	"lms-backend/internal/usecase"
	"lms-backend/pkg/utils"

	"go.uber.org/zap"
)

type AssetHandler struct {
	service usecase.AssetService
	log     *zap.Logger
}

func NewAssetHandler(service usecase.AssetService, log *zap.Logger) *AssetHandler {
	return &AssetHandler{
		service: service,
		log:     log.With(zap.String("handler", "asset")),
	}
}

// GetLogo handles GET /api/assets/logo
func (h *AssetHandler) GetLogo(w http.ResponseWriter, r *http.Request) {
	logo, err := h.service.GetLogo(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get logo")
		return
	}

	utils.ResponseSuccess(w, "Logo retrieved successfully", logo)
}

// UpdateLogo handles PUT /api/assets/logo (admin only)
func (h *AssetHandler) UpdateLogo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxLogoSize+1<<10)

	var req request.UpdateLogoRequest
	if err := decodeJSON(r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseTooLarge(w, "Logo too large. Maximum size is 2MB")
			return
		}
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	logo, err := h.service.UpdateLogo(r.Context(), actorFrom(r), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update logo")
		return
	}

	utils.ResponseSuccess(w, "Logo updated successfully", logo)
}

// List handles GET /api/assets (admin only)
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	assets, err := h.service.List(r.Context(), actorFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list assets")
		return
	}

	utils.ResponseSuccess(w, "Assets retrieved successfully", assets)
}
