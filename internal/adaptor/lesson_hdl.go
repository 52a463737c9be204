package adaptor

import (
	"net/http"

	"lms-backend/internal/dto/request"
	"lms-backend/internal/usecase"
	"lms-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type LessonHandler struct {
	service usecase.LessonService
	log     *zap.Logger
}

func NewLessonHandler(service usecase.LessonService, log *zap.Logger) *LessonHandler {
	return &LessonHandler{
		service: service,
		log:     log.With(zap.String("handler", "lesson")),
	}
}

// ListByCourse handles GET /api/lessons/course/{courseId}
func (h *LessonHandler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.service.ListByCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		handleServiceError(h.log, w, err, "list lessons")
		return
	}

	utils.ResponseSuccess(w, "Lessons retrieved successfully", lessons)
}

// Get handles GET /api/lessons/{id}
func (h *LessonHandler) Get(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get lesson")
		return
	}

	utils.ResponseSuccess(w, "Lesson retrieved successfully", lesson)
}

// Create handles POST /api/lessons/course/{courseId}
func (h *LessonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.LessonRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	lesson, err := h.service.Create(r.Context(), actorFrom(r), chi.URLParam(r, "courseId"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create lesson")
		return
	}

	utils.ResponseCreated(w, "Lesson created successfully", lesson)
}

// Update handles PUT /api/lessons/{id}
func (h *LessonHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.LessonRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	lesson, err := h.service.Update(r.Context(), actorFrom(r), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update lesson")
		return
	}

	utils.ResponseSuccess(w, "Lesson updated successfully", lesson)
}

// Delete handles DELETE /api/lessons/{id}
func (h *LessonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete lesson")
		return
	}

	utils.ResponseSuccess(w, "Lesson deleted successfully", nil)
}

// Reorder handles PUT /api/lessons/reorder/{courseId}
func (h *LessonHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req request.ReorderLessonsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	lessons, err := h.service.Reorder(r.Context(), actorFrom(r), chi.URLParam(r, "courseId"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "reorder lessons")
		return
	}

	utils.ResponseSuccess(w, "Lessons reordered successfully", lessons)
}
