package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lms-backend/internal/data/entity"
	"lms-backend/internal/data/repository"
	"lms-backend/internal/dto/request"
	"lms-backend/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Courses in this department are visible to every department.
const generalDepartment = "general"

type CourseService interface {
	List(ctx context.Context, actor *Actor, req request.ListCoursesRequest) (*response.PaginatedResponse[response.CourseResponse], error)
	ListForUser(ctx context.Context, actor *Actor) ([]response.CourseResponse, error)
	ListByInstructor(ctx context.Context, actor *Actor, instructorID string, req request.PaginatedRequest) (*response.PaginatedResponse[response.CourseResponse], error)
	Get(ctx context.Context, id string) (*response.CourseDetailResponse, error)
	Create(ctx context.Context, actor *Actor, req *request.CourseRequest) (*response.CourseResponse, error)
	Update(ctx context.Context, actor *Actor, id string, req *request.CourseRequest) (*response.CourseResponse, error)
	Delete(ctx context.Context, actor *Actor, id string) error
	SetActive(ctx context.Context, actor *Actor, id string, active bool) (*response.CourseResponse, error)
}

type courseService struct {
	courses     repository.CourseRepository
	lessons     repository.LessonRepository
	departments repository.DepartmentRepository
	log         *zap.Logger
	now         func() time.Time
}

func NewCourseService(repo *repository.Repository, log *zap.Logger) CourseService {
	return &courseService{
		courses:     repo.Course,
		lessons:     repo.Lesson,
		departments: repo.Department,
		log:         log.With(zap.String("service", "course")),
		now:         time.Now,
	}
}

// VisibilityFilter scopes listings to what actor may browse. Admin and
// general users see everything; members of a department see their own
// department plus general; everyone else sees active courses only.
func VisibilityFilter(actor *Actor, includeInactive bool) repository.CourseFilter {
	switch {
	case actor.SeesAllCourses():
		return repository.CourseFilter{IncludeInactive: includeInactive}
	case actor != nil && actor.Department != nil && *actor.Department != "":
		return repository.CourseFilter{Departments: []string{*actor.Department, generalDepartment}}
	default:
		return repository.CourseFilter{}
	}
}

func (s *courseService) List(ctx context.Context, actor *Actor, req request.ListCoursesRequest) (*response.PaginatedResponse[response.CourseResponse], error) {
	filter := VisibilityFilter(actor, req.IncludeInactive)
	filter.Search = strings.TrimSpace(req.Search)
	return s.page(ctx, filter, req.PaginatedRequest)
}

// ListForUser returns the caller's department catalogue, inactive courses included.
func (s *courseService) ListForUser(ctx context.Context, actor *Actor) ([]response.CourseResponse, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "Authentication required")
	}

	filter := VisibilityFilter(actor, true)
	filter.IncludeInactive = true

	courses, err := s.courses.FindAll(ctx, filter, request.MaxPerPage, 0)
	if err != nil {
		s.log.Error("Failed to list user courses", zap.Error(err), zap.String("user_id", actor.ID.String()))
		return nil, fmt.Errorf("failed to get courses")
	}
	return response.CoursesToResponse(courses), nil
}

func (s *courseService) ListByInstructor(ctx context.Context, actor *Actor, instructorID string, req request.PaginatedRequest) (*response.PaginatedResponse[response.CourseResponse], error) {
	id, err := parseID(instructorID, "instructor")
	if err != nil {
		return nil, err
	}

	filter := repository.CourseFilter{
		InstructorID:    &id,
		IncludeInactive: actor.SeesAllCourses() || (actor != nil && actor.ID == id),
	}
	return s.page(ctx, filter, req)
}

func (s *courseService) page(ctx context.Context, filter repository.CourseFilter, req request.PaginatedRequest) (*response.PaginatedResponse[response.CourseResponse], error) {
	req = req.Normalize()

	courses, err := s.courses.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list courses", zap.Error(err), zap.Int("page", req.Page))
		return nil, fmt.Errorf("failed to get courses")
	}

	total, err := s.courses.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count courses", zap.Error(err))
		return nil, fmt.Errorf("failed to count courses")
	}

	return response.NewPaginatedResponse(response.CoursesToResponse(courses), req.Page, req.PerPage, total), nil
}

func (s *courseService) Get(ctx context.Context, id string) (*response.CourseDetailResponse, error) {
	course, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessons.FindByCourse(ctx, course.ID)
	if err != nil {
		s.log.Error("Failed to list course lessons", zap.Error(err), zap.String("course_id", id))
		return nil, fmt.Errorf("failed to get course")
	}

	return &response.CourseDetailResponse{
		CourseResponse: response.CourseToResponse(course),
		Lessons:        response.LessonsToResponse(lessons),
	}, nil
}

func (s *courseService) Create(ctx context.Context, actor *Actor, req *request.CourseRequest) (*response.CourseResponse, error) {
	if !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "Access denied. Only admin can create courses.")
	}

	if err := s.checkDepartment(ctx, req.Department); err != nil {
		return nil, err
	}

	instructorID := actor.ID
	if req.InstructorID != nil {
		id, err := parseID(*req.InstructorID, "instructor")
		if err != nil {
			return nil, err
		}
		instructorID = id
	}

	now := s.now()
	course := &entity.Course{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		InstructorID: instructorID,
		IsActive:     true,
	}
	applyCourseRequest(course, req)

	if err := s.courses.Create(ctx, course); err != nil {
		s.log.Error("Failed to create course", zap.Error(err), zap.String("title", course.Title))
		return nil, fmt.Errorf("failed to create course")
	}

	s.log.Info("Course created",
		zap.String("course_id", course.ID.String()),
		zap.String("department", course.Department),
		zap.String("instructor_id", instructorID.String()),
	)

	resp := response.CourseToResponse(course)
	return &resp, nil
}

func (s *courseService) Update(ctx context.Context, actor *Actor, id string, req *request.CourseRequest) (*response.CourseResponse, error) {
	course, err := s.loadManaged(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Department != course.Department {
		if err := s.checkDepartment(ctx, req.Department); err != nil {
			return nil, err
		}
	}

	applyCourseRequest(course, req)
	if req.InstructorID != nil && actor.IsAdmin() {
		instructorID, err := parseID(*req.InstructorID, "instructor")
		if err != nil {
			return nil, err
		}
		course.InstructorID = instructorID
	}
	course.UpdatedAt = s.now()

	if err := s.courses.Update(ctx, course); err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Course not found")
		}
		s.log.Error("Failed to update course", zap.Error(err), zap.String("course_id", id))
		return nil, fmt.Errorf("failed to update course")
	}

	resp := response.CourseToResponse(course)
	return &resp, nil
}

func (s *courseService) Delete(ctx context.Context, actor *Actor, id string) error {
	course, err := s.loadManaged(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, course.ID); err != nil {
		if isNotFound(err) {
			return newError(ErrNotFound, "Course not found")
		}
		s.log.Error("Failed to delete course", zap.Error(err), zap.String("course_id", id))
		return fmt.Errorf("failed to delete course")
	}

	s.log.Info("Course deleted", zap.String("course_id", id), zap.String("by", actor.ID.String()))
	return nil
}

func (s *courseService) SetActive(ctx context.Context, actor *Actor, id string, active bool) (*response.CourseResponse, error) {
	if !actor.SeesAllCourses() {
		verb := "deactivate"
		if active {
			verb = "activate"
		}
		return nil, newError(ErrForbidden, "Access denied. Only admin users can %s courses.", verb)
	}

	course, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.courses.SetActive(ctx, course.ID, active); err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Course not found")
		}
		s.log.Error("Failed to set course state", zap.Error(err), zap.String("course_id", id))
		return nil, fmt.Errorf("failed to update course")
	}
	course.IsActive = active

	s.log.Info("Course state changed", zap.String("course_id", id), zap.Bool("active", active))

	resp := response.CourseToResponse(course)
	return &resp, nil
}

func (s *courseService) load(ctx context.Context, id string) (*entity.Course, error) {
	courseID, err := parseID(id, "course")
	if err != nil {
		return nil, err
	}

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		s.log.Error("Failed to find course", zap.Error(err), zap.String("course_id", id))
		return nil, fmt.Errorf("failed to get course")
	}
	if course == nil {
		return nil, newError(ErrNotFound, "Course not found")
	}
	return course, nil
}

// loadManaged loads a course the actor instructs, or any course for admins.
func (s *courseService) loadManaged(ctx context.Context, actor *Actor, id string) (*entity.Course, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "Authentication required")
	}

	course, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !course.CanManage(actor.ID, actor.Role) {
		return nil, newError(ErrForbidden, "Access denied")
	}
	return course, nil
}

func (s *courseService) checkDepartment(ctx context.Context, name string) error {
	dept, err := s.departments.FindByName(ctx, name)
	if err != nil {
		s.log.Error("Failed to find department", zap.Error(err), zap.String("department", name))
		return fmt.Errorf("failed to validate department")
	}
	if dept == nil {
		return newError(ErrValidation, "Invalid department. Please select a valid department.")
	}
	return nil
}

func applyCourseRequest(course *entity.Course, req *request.CourseRequest) {
	course.Title = strings.TrimSpace(req.Title)
	course.Description = req.Description
	course.Category = req.Category
	course.Department = req.Department
	course.Price = req.Price
	course.Duration = req.Duration
	course.ImageURL = req.ImageURL
	course.DocumentURL = req.DocumentURL
	course.ExternalLink = req.ExternalLink
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}
}
