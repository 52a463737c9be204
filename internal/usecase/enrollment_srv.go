package usecase

import (
	"context"
	"fmt"
	"time"

	"lms-backend/internal/data/entity"
	"lms-backend/internal/data/repository"
	"lms-backend/internal/dto/request"
	"lms-backend/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, actor *Actor, req *request.EnrollRequest) (*response.EnrollmentResponse, error)
	RequestCompletion(ctx context.Context, actor *Actor, id string, req *request.CompletionRequest) (*response.EnrollmentResponse, error)
	Approve(ctx context.Context, actor *Actor, id string) (*response.EnrollmentResponse, error)
	Reject(ctx context.Context, actor *Actor, id string, req *request.CompletionRequest) (*response.EnrollmentResponse, error)
	UpdateProgress(ctx context.Context, actor *Actor, id string, req *request.ProgressRequest) (*response.EnrollmentResponse, error)
	Delete(ctx context.Context, actor *Actor, id string) error

	MyEnrollments(ctx context.Context, actor *Actor) ([]response.EnrollmentResponse, error)
	Check(ctx context.Context, actor *Actor, courseID string) (*response.EnrollmentCheckResponse, error)

	// Admin views
	ListAll(ctx context.Context) ([]response.EnrollmentResponse, error)
	ListPending(ctx context.Context) ([]response.EnrollmentResponse, error)
	ListCompleted(ctx context.Context) ([]response.EnrollmentResponse, error)
	ListByCourse(ctx context.Context, actor *Actor, courseID string) ([]response.EnrollmentResponse, error)
	Stats(ctx context.Context) (*entity.EnrollmentStats, error)
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	log         *zap.Logger
	now         func() time.Time
}

func NewEnrollmentService(repo *repository.Repository, log *zap.Logger) EnrollmentService {
	return &enrollmentService{
		enrollments: repo.Enrollment,
		courses:     repo.Course,
		log:         log.With(zap.String("service", "enrollment")),
		now:         time.Now,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, actor *Actor, req *request.EnrollRequest) (*response.EnrollmentResponse, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "Authentication required")
	}

	courseID, err := parseID(req.CourseID, "course")
	if err != nil {
		return nil, err
	}

	// 1. Course must exist and be open
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		s.log.Error("Failed to find course", zap.Error(err), zap.String("course_id", req.CourseID))
		return nil, fmt.Errorf("failed to enroll")
	}
	if course == nil {
		return nil, newError(ErrNotFound, "Course not found")
	}
	if !course.IsActive {
		return nil, newError(ErrValidation, "Course is not active")
	}

	// 2. One enrollment per user and course
	existing, err := s.enrollments.FindByUserAndCourse(ctx, actor.ID, courseID)
	if err != nil {
		s.log.Error("Failed to check enrollment", zap.Error(err))
		return nil, fmt.Errorf("failed to enroll")
	}
	if existing != nil {
		return nil, newError(ErrConflict, "Already enrolled in this course")
	}

	now := s.now()
	enrollment := &entity.Enrollment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:     actor.ID,
		CourseID:   courseID,
		Status:     entity.EnrollmentStatusActive,
		EnrolledAt: now,
	}

	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		s.log.Error("Failed to create enrollment", zap.Error(err), zap.String("course_id", req.CourseID))
		return nil, fmt.Errorf("failed to enroll")
	}

	s.log.Info("User enrolled",
		zap.String("enrollment_id", enrollment.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.String("course_id", req.CourseID),
	)

	resp := response.EnrollmentToResponse(enrollment)
	return &resp, nil
}

func (s *enrollmentService) RequestCompletion(ctx context.Context, actor *Actor, id string, req *request.CompletionRequest) (*response.EnrollmentResponse, error) {
	e, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !e.RequestCompletion(req.Notes, s.now()) {
		return nil, newError(ErrValidation, "Can only request completion for active enrollments")
	}

	return s.save(ctx, e, "request completion")
}

func (s *enrollmentService) Approve(ctx context.Context, actor *Actor, id string) (*response.EnrollmentResponse, error) {
	if !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "Access denied")
	}

	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !e.Approve(actor.ID, s.now()) {
		return nil, newError(ErrValidation, "Can only approve completion requests")
	}

	return s.save(ctx, e, "approve completion")
}

func (s *enrollmentService) Reject(ctx context.Context, actor *Actor, id string, req *request.CompletionRequest) (*response.EnrollmentResponse, error) {
	if !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "Access denied")
	}

	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !e.Reject(req.Notes) {
		return nil, newError(ErrValidation, "Can only reject completion requests")
	}

	return s.save(ctx, e, "reject completion")
}

func (s *enrollmentService) UpdateProgress(ctx context.Context, actor *Actor, id string, req *request.ProgressRequest) (*response.EnrollmentResponse, error) {
	if req.Progress < 0 || req.Progress > 100 {
		return nil, newError(ErrValidation, "Progress must be between 0 and 100")
	}

	e, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	e.Progress = req.Progress
	return s.save(ctx, e, "update progress")
}

func (s *enrollmentService) Delete(ctx context.Context, actor *Actor, id string) error {
	e, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.enrollments.Delete(ctx, e.ID); err != nil {
		if isNotFound(err) {
			return newError(ErrNotFound, "Enrollment not found")
		}
		s.log.Error("Failed to delete enrollment", zap.Error(err), zap.String("enrollment_id", id))
		return fmt.Errorf("failed to delete enrollment")
	}

	s.log.Info("Enrollment deleted", zap.String("enrollment_id", id), zap.String("by", actor.ID.String()))
	return nil
}

func (s *enrollmentService) MyEnrollments(ctx context.Context, actor *Actor) ([]response.EnrollmentResponse, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "Authentication required")
	}

	list, err := s.enrollments.FindByUser(ctx, actor.ID)
	if err != nil {
		s.log.Error("Failed to list user enrollments", zap.Error(err), zap.String("user_id", actor.ID.String()))
		return nil, fmt.Errorf("failed to get enrollments")
	}
	return response.EnrollmentsToResponse(list), nil
}

func (s *enrollmentService) Check(ctx context.Context, actor *Actor, courseID string) (*response.EnrollmentCheckResponse, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "Authentication required")
	}

	id, err := parseID(courseID, "course")
	if err != nil {
		return nil, err
	}

	e, err := s.enrollments.FindByUserAndCourse(ctx, actor.ID, id)
	if err != nil {
		s.log.Error("Failed to check enrollment", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to check enrollment")
	}
	if e == nil {
		return &response.EnrollmentCheckResponse{Enrolled: false}, nil
	}

	resp := response.EnrollmentToResponse(e)
	return &response.EnrollmentCheckResponse{Enrolled: true, Enrollment: &resp}, nil
}

func (s *enrollmentService) ListAll(ctx context.Context) ([]response.EnrollmentResponse, error) {
	return s.listByStatus(ctx, nil)
}

func (s *enrollmentService) ListPending(ctx context.Context) ([]response.EnrollmentResponse, error) {
	status := entity.EnrollmentStatusCompletionRequested
	return s.listByStatus(ctx, &status)
}

func (s *enrollmentService) ListCompleted(ctx context.Context) ([]response.EnrollmentResponse, error) {
	status := entity.EnrollmentStatusCompleted
	return s.listByStatus(ctx, &status)
}

func (s *enrollmentService) listByStatus(ctx context.Context, status *entity.EnrollmentStatus) ([]response.EnrollmentResponse, error) {
	list, err := s.enrollments.FindAll(ctx, status)
	if err != nil {
		s.log.Error("Failed to list enrollments", zap.Error(err))
		return nil, fmt.Errorf("failed to get enrollments")
	}
	return response.EnrollmentsToResponse(list), nil
}

// ListByCourse is open to the course instructor and admins.
func (s *enrollmentService) ListByCourse(ctx context.Context, actor *Actor, courseID string) ([]response.EnrollmentResponse, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "Authentication required")
	}

	id, err := parseID(courseID, "course")
	if err != nil {
		return nil, err
	}

	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find course", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to get enrollments")
	}
	if course == nil {
		return nil, newError(ErrNotFound, "Course not found")
	}
	if !course.CanManage(actor.ID, actor.Role) {
		return nil, newError(ErrForbidden, "Access denied")
	}

	list, err := s.enrollments.FindByCourse(ctx, id)
	if err != nil {
		s.log.Error("Failed to list course enrollments", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to get enrollments")
	}
	return response.EnrollmentsToResponse(list), nil
}

func (s *enrollmentService) Stats(ctx context.Context) (*entity.EnrollmentStats, error) {
	stats, err := s.enrollments.Stats(ctx)
	if err != nil {
		s.log.Error("Failed to get enrollment stats", zap.Error(err))
		return nil, fmt.Errorf("failed to get enrollment stats")
	}
	return stats, nil
}

func (s *enrollmentService) load(ctx context.Context, id string) (*entity.Enrollment, error) {
	enrollmentID, err := parseID(id, "enrollment")
	if err != nil {
		return nil, err
	}

	e, err := s.enrollments.FindByID(ctx, enrollmentID)
	if err != nil {
		s.log.Error("Failed to find enrollment", zap.Error(err), zap.String("enrollment_id", id))
		return nil, fmt.Errorf("failed to get enrollment")
	}
	if e == nil {
		return nil, newError(ErrNotFound, "Enrollment not found")
	}
	return e, nil
}

func (s *enrollmentService) loadOwned(ctx context.Context, actor *Actor, id string) (*entity.Enrollment, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "Authentication required")
	}

	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !e.CanAccess(actor.ID, actor.Role) {
		return nil, newError(ErrForbidden, "Access denied")
	}
	return e, nil
}

func (s *enrollmentService) save(ctx context.Context, e *entity.Enrollment, operation string) (*response.EnrollmentResponse, error) {
	if err := s.enrollments.Update(ctx, e); err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Enrollment not found")
		}
		s.log.Error("Failed to "+operation, zap.Error(err), zap.String("enrollment_id", e.ID.String()))
		return nil, fmt.Errorf("failed to %s", operation)
	}

	s.log.Info("Enrollment updated",
		zap.String("enrollment_id", e.ID.String()),
		zap.String("operation", operation),
		zap.String("status", string(e.Status)),
	)

	resp := response.EnrollmentToResponse(e)
	return &resp, nil
}
