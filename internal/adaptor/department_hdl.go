package adaptor

import (
	"net/http"

	"lms-backend/internal/dto/request"
	"lms-backend/internal/usecase"
	"lms-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DepartmentHandler struct {
	service usecase.DepartmentService
	log     *zap.Logger
}

func NewDepartmentHandler(service usecase.DepartmentService, log *zap.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		service: service,
		log:     log.With(zap.String("handler", "department")),
	}
}

// List handles GET /api/departments
func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	depts, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list departments")
		return
	}

	utils.ResponseSuccess(w, "Departments retrieved successfully", depts)
}

// Get handles GET /api/departments/{id}
func (h *DepartmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	dept, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get department")
		return
	}

	utils.ResponseSuccess(w, "Department retrieved successfully", dept)
}

// Create handles POST /api/departments (admin only)
func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.DepartmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	dept, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create department")
		return
	}

	utils.ResponseCreated(w, "Department created successfully", dept)
}

// Update handles PUT /api/departments/{id} (admin only)
func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.DepartmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	dept, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update department")
		return
	}

	utils.ResponseSuccess(w, "Department updated successfully", dept)
}

// Delete handles DELETE /api/departments/{id} (admin only)
func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete department")
		return
	}

	utils.ResponseSuccess(w, "Department deleted successfully", nil)
}
