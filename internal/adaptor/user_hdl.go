package adaptor

import (
	"net/http"

	"lms-backend/internal/data/entity"
	"lms-backend/internal/dto/request"
	"lms-backend/internal/usecase"
	"lms-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// List handles GET /api/users (admin only)
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context(), paginationFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// Get handles GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// Update handles PUT /api/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.Update(r.Context(), actorFrom(r), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated successfully", user)
}

// Delete handles DELETE /api/users/{id} (admin only)
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted successfully", nil)
}

// ChangePassword handles PUT /api/users/{id}/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req request.ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), actorFrom(r), chi.URLParam(r, "id"), &req); err != nil {
		handleServiceError(h.log, w, err, "change password")
		return
	}

	utils.ResponseSuccess(w, "Password updated successfully", nil)
}

// Block handles PATCH /api/users/{id}/block (admin only)
func (h *UserHandler) Block(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, entity.UserStatusBlocked, "User blocked successfully")
}

// Unblock handles PATCH /api/users/{id}/unblock (admin only)
func (h *UserHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, entity.UserStatusActive, "User unblocked successfully")
}

// SetStatus handles PATCH /api/users/{id}/status (admin only)
func (h *UserHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateUserStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.setStatus(w, r, entity.UserStatus(req.Status), "User status updated successfully")
}

func (h *UserHandler) setStatus(w http.ResponseWriter, r *http.Request, status entity.UserStatus, message string) {
	user, err := h.service.SetStatus(r.Context(), actorFrom(r), chi.URLParam(r, "id"), status)
	if err != nil {
		handleServiceError(h.log, w, err, "set user status")
		return
	}

	utils.ResponseSuccess(w, message, user)
}
