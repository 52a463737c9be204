package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"lms-backend/internal/dto/request"
	"lms-backend/internal/usecase"
	"lms-backend/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Department *DepartmentHandler
	Course     *CourseHandler
	Lesson     *LessonHandler
	Enrollment *EnrollmentHandler
	Upload     *UploadHandler
	Asset      *AssetHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		User:       NewUserHandler(service.User, log),
		Department: NewDepartmentHandler(service.Department, log),
		Course:     NewCourseHandler(service.Course, log),
		Lesson:     NewLessonHandler(service.Lesson, log),
		Enrollment: NewEnrollmentHandler(service.Enrollment, log),
		Upload:     NewUploadHandler(service.Upload, log),
		Asset:      NewAssetHandler(service.Asset, log),
	}
}

// decodeAndValidate writes the 400 itself and reports false when the body is
// unusable.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(r, dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// actorFrom returns nil for anonymous requests.
func actorFrom(r *http.Request) *usecase.Actor {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		return nil
	}
	return usecase.ActorFromIdentity(identity)
}

func paginationFrom(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
	}
}

// handleServiceError maps usecase error kinds to HTTP statuses. Anything that
// is not a usecase error is logged and hidden behind a 500.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	msg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrValidation), errors.Is(err, usecase.ErrInvalidCode):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, msg, nil)

	case errors.Is(err, usecase.ErrUnauthorized), errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, msg)

	case errors.Is(err, usecase.ErrForbidden), errors.Is(err, usecase.ErrBlocked):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, msg)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, msg)

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, msg)

	case errors.Is(err, usecase.ErrTooLarge):
		log.Warn(operation+" failed - too large", zap.Error(err))
		utils.ResponseTooLarge(w, msg)

	case errors.Is(err, usecase.ErrUnavailable):
		log.Warn(operation+" failed - unavailable", zap.Error(err))
		utils.ResponseServiceUnavailable(w, msg)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
