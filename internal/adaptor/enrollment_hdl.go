package adaptor

import (
	"bytes"
	"io"
	"net/http"

	"lms-backend/internal/dto/request"
	"lms-backend/internal/usecase"
	"lms-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EnrollmentHandler struct {
	service usecase.EnrollmentService
	log     *zap.Logger
}

func NewEnrollmentHandler(service usecase.EnrollmentService, log *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service: service,
		log:     log.With(zap.String("handler", "enrollment")),
	}
}

// Enroll handles POST /api/enrollments
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req request.EnrollRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	enrollment, err := h.service.Enroll(r.Context(), actorFrom(r), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "enroll")
		return
	}

	utils.ResponseCreated(w, "Enrolled successfully", enrollment)
}

// MyEnrollments handles GET /api/enrollments/my-enrollments
func (h *EnrollmentHandler) MyEnrollments(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.MyEnrollments(r.Context(), actorFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list my enrollments")
		return
	}

	utils.ResponseSuccess(w, "Enrollments retrieved successfully", list)
}

// Check handles GET /api/enrollments/check/{courseId}
func (h *EnrollmentHandler) Check(w http.ResponseWriter, r *http.Request) {
	check, err := h.service.Check(r.Context(), actorFrom(r), chi.URLParam(r, "courseId"))
	if err != nil {
		handleServiceError(h.log, w, err, "check enrollment")
		return
	}

	utils.ResponseSuccess(w, "Enrollment status retrieved successfully", check)
}

// ListAll handles GET /api/enrollments (admin only)
func (h *EnrollmentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListAll(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list enrollments")
		return
	}

	utils.ResponseSuccess(w, "Enrollments retrieved successfully", list)
}

// ListPending handles GET /api/enrollments/pending-approval (admin only)
func (h *EnrollmentHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListPending(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list pending enrollments")
		return
	}

	utils.ResponseSuccess(w, "Pending completion requests retrieved successfully", list)
}

// ListCompleted handles GET /api/enrollments/completed (admin only)
func (h *EnrollmentHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListCompleted(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list completed enrollments")
		return
	}

	utils.ResponseSuccess(w, "Completed enrollments retrieved successfully", list)
}

// Stats handles GET /api/enrollments/stats (admin only)
func (h *EnrollmentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get enrollment stats")
		return
	}

	utils.ResponseSuccess(w, "Enrollment stats retrieved successfully", stats)
}

// ListByCourse handles GET /api/enrollments/course/{courseId}
func (h *EnrollmentHandler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListByCourse(r.Context(), actorFrom(r), chi.URLParam(r, "courseId"))
	if err != nil {
		handleServiceError(h.log, w, err, "list course enrollments")
		return
	}

	utils.ResponseSuccess(w, "Enrollments retrieved successfully", list)
}

// RequestCompletion handles POST /api/enrollments/{id}/request-completion
func (h *EnrollmentHandler) RequestCompletion(w http.ResponseWriter, r *http.Request) {
	var req request.CompletionRequest
	if !h.decodeOptional(w, r, &req) {
		return
	}

	enrollment, err := h.service.RequestCompletion(r.Context(), actorFrom(r), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "request completion")
		return
	}

	utils.ResponseSuccess(w, "Completion request submitted successfully", enrollment)
}

// Approve handles POST /api/enrollments/{id}/approve (admin only)
func (h *EnrollmentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	enrollment, err := h.service.Approve(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "approve completion")
		return
	}

	utils.ResponseSuccess(w, "Course completion approved successfully", enrollment)
}

// Reject handles POST /api/enrollments/{id}/reject (admin only)
func (h *EnrollmentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req request.CompletionRequest
	if !h.decodeOptional(w, r, &req) {
		return
	}

	enrollment, err := h.service.Reject(r.Context(), actorFrom(r), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "reject completion")
		return
	}

	utils.ResponseSuccess(w, "Completion request rejected", enrollment)
}

// UpdateProgress handles PUT /api/enrollments/{id}/progress
func (h *EnrollmentHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req request.ProgressRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	enrollment, err := h.service.UpdateProgress(r.Context(), actorFrom(r), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update progress")
		return
	}

	utils.ResponseSuccess(w, "Progress updated successfully", enrollment)
}

// Delete handles DELETE /api/enrollments/{id}
func (h *EnrollmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete enrollment")
		return
	}

	utils.ResponseSuccess(w, "Enrollment deleted successfully", nil)
}

// decodeOptional accepts an empty body for requests whose fields are all
// optional.
func (h *EnrollmentHandler) decodeOptional(w http.ResponseWriter, r *http.Request, dst *request.CompletionRequest) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	if len(body) == 0 {
		return true
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	return decodeAndValidate(w, r, dst)
}
