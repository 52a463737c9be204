package adaptor

import (
	"net/http"
	"strconv"

	"lms-backend/internal/dto/request"
	"lms-backend/internal/usecase"
	"lms-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CourseHandler struct {
	service usecase.CourseService
	log     *zap.Logger
}

func NewCourseHandler(service usecase.CourseService, log *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		log:     log.With(zap.String("handler", "course")),
	}
}

// List handles GET /api/courses. Anonymous callers only see active courses.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	includeInactive, _ := strconv.ParseBool(query.Get("include_inactive"))

	req := request.ListCoursesRequest{
		PaginatedRequest: paginationFrom(r),
		Search:           query.Get("q"),
		IncludeInactive:  includeInactive,
	}

	courses, err := h.service.List(r.Context(), actorFrom(r), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list courses")
		return
	}

	utils.ResponseSuccess(w, "Courses retrieved successfully", courses)
}

// ListForUser handles GET /api/courses/user-courses
func (h *CourseHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListForUser(r.Context(), actorFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list user courses")
		return
	}

	utils.ResponseSuccess(w, "Courses retrieved successfully", courses)
}

// ListByInstructor handles GET /api/courses/instructor/{id}
func (h *CourseHandler) ListByInstructor(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListByInstructor(r.Context(), actorFrom(r), chi.URLParam(r, "id"), paginationFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list instructor courses")
		return
	}

	utils.ResponseSuccess(w, "Courses retrieved successfully", courses)
}

// Get handles GET /api/courses/{id}, public
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get course")
		return
	}

	utils.ResponseSuccess(w, "Course retrieved successfully", course)
}

// Create handles POST /api/courses (admin only)
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CourseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	course, err := h.service.Create(r.Context(), actorFrom(r), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create course")
		return
	}

	utils.ResponseCreated(w, "Course created successfully", course)
}

// Update handles PUT /api/courses/{id}
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.CourseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	course, err := h.service.Update(r.Context(), actorFrom(r), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update course")
		return
	}

	utils.ResponseSuccess(w, "Course updated successfully", course)
}

// Delete handles DELETE /api/courses/{id}
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete course")
		return
	}

	utils.ResponseSuccess(w, "Course deleted successfully", nil)
}

// Activate handles PATCH /api/courses/{id}/activate
func (h *CourseHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true, "Course activated successfully")
}

// Deactivate handles PATCH /api/courses/{id}/deactivate
func (h *CourseHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false, "Course deactivated successfully")
}

func (h *CourseHandler) setActive(w http.ResponseWriter, r *http.Request, active bool, message string) {
	course, err := h.service.SetActive(r.Context(), actorFrom(r), chi.URLParam(r, "id"), active)
	if err != nil {
		handleServiceError(h.log, w, err, "set course active")
		return
	}

	utils.ResponseSuccess(w, message, course)
}
