package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"lms-backend/internal/data/entity"
	"lms-backend/internal/data/repository"
	"lms-backend/internal/dto/request"
	"lms-backend/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LessonService interface {
	ListByCourse(ctx context.Context, courseID string) ([]response.LessonResponse, error)
	Get(ctx context.Context, id string) (*response.LessonResponse, error)
	Create(ctx context.Context, actor *Actor, courseID string, req *request.LessonRequest) (*response.LessonResponse, error)
	Update(ctx context.Context, actor *Actor, id string, req *request.LessonRequest) (*response.LessonResponse, error)
	Delete(ctx context.Context, actor *Actor, id string) error
	Reorder(ctx context.Context, actor *Actor, courseID string, req *request.ReorderLessonsRequest) ([]response.LessonResponse, error)
}

type lessonService struct {
	lessons     repository.LessonRepository
	courses     repository.CourseRepository
	editorRoles []string
	log         *zap.Logger
	now         func() time.Time
}

// NewLessonService limits lesson creation to editorRoles; edits additionally
// require being the course instructor or an admin.
func NewLessonService(repo *repository.Repository, editorRoles []string, log *zap.Logger) LessonService {
	return &lessonService{
		lessons:     repo.Lesson,
		courses:     repo.Course,
		editorRoles: editorRoles,
		log:         log.With(zap.String("service", "lesson")),
		now:         time.Now,
	}
}

func (s *lessonService) ListByCourse(ctx context.Context, courseID string) ([]response.LessonResponse, error) {
	id, err := parseID(courseID, "course")
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessons.FindByCourse(ctx, id)
	if err != nil {
		s.log.Error("Failed to list lessons", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to get lessons")
	}
	return response.LessonsToResponse(lessons), nil
}

func (s *lessonService) Get(ctx context.Context, id string) (*response.LessonResponse, error) {
	lesson, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.LessonToResponse(lesson)
	return &resp, nil
}

func (s *lessonService) Create(ctx context.Context, actor *Actor, courseID string, req *request.LessonRequest) (*response.LessonResponse, error) {
	if actor == nil || !slices.Contains(s.editorRoles, actor.Role) {
		return nil, newError(ErrForbidden, "Access denied")
	}

	course, err := s.manageableCourse(ctx, actor, courseID)
	if err != nil {
		return nil, err
	}

	orderIndex := 0
	if req.OrderIndex != nil {
		orderIndex = *req.OrderIndex
	} else {
		orderIndex, err = s.lessons.NextOrderIndex(ctx, course.ID)
		if err != nil {
			s.log.Error("Failed to get next lesson position", zap.Error(err), zap.String("course_id", courseID))
			return nil, fmt.Errorf("failed to create lesson")
		}
	}

	now := s.now()
	lesson := &entity.Lesson{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CourseID:   course.ID,
		Title:      strings.TrimSpace(req.Title),
		Content:    req.Content,
		VideoURL:   req.VideoURL,
		Duration:   req.Duration,
		OrderIndex: orderIndex,
	}

	if err := s.lessons.Create(ctx, lesson); err != nil {
		s.log.Error("Failed to create lesson", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to create lesson")
	}

	s.log.Info("Lesson created",
		zap.String("lesson_id", lesson.ID.String()),
		zap.String("course_id", courseID),
		zap.Int("order_index", orderIndex),
	)

	resp := response.LessonToResponse(lesson)
	return &resp, nil
}

func (s *lessonService) Update(ctx context.Context, actor *Actor, id string, req *request.LessonRequest) (*response.LessonResponse, error) {
	lesson, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.manageableCourse(ctx, actor, lesson.CourseID.String()); err != nil {
		return nil, err
	}

	lesson.Title = strings.TrimSpace(req.Title)
	lesson.Content = req.Content
	lesson.VideoURL = req.VideoURL
	lesson.Duration = req.Duration
	if req.OrderIndex != nil {
		lesson.OrderIndex = *req.OrderIndex
	}
	lesson.UpdatedAt = s.now()

	if err := s.lessons.Update(ctx, lesson); err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Lesson not found")
		}
		s.log.Error("Failed to update lesson", zap.Error(err), zap.String("lesson_id", id))
		return nil, fmt.Errorf("failed to update lesson")
	}

	resp := response.LessonToResponse(lesson)
	return &resp, nil
}

func (s *lessonService) Delete(ctx context.Context, actor *Actor, id string) error {
	lesson, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.manageableCourse(ctx, actor, lesson.CourseID.String()); err != nil {
		return err
	}

	if err := s.lessons.Delete(ctx, lesson.ID); err != nil {
		if isNotFound(err) {
			return newError(ErrNotFound, "Lesson not found")
		}
		s.log.Error("Failed to delete lesson", zap.Error(err), zap.String("lesson_id", id))
		return fmt.Errorf("failed to delete lesson")
	}

	s.log.Info("Lesson deleted", zap.String("lesson_id", id))
	return nil
}

// Reorder assigns order_index = position + 1 following req.LessonIDs.
func (s *lessonService) Reorder(ctx context.Context, actor *Actor, courseID string, req *request.ReorderLessonsRequest) ([]response.LessonResponse, error) {
	course, err := s.manageableCourse(ctx, actor, courseID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(req.LessonIDs))
	seen := make(map[uuid.UUID]struct{}, len(req.LessonIDs))
	for _, raw := range req.LessonIDs {
		id, err := parseID(raw, "lesson")
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			return nil, newError(ErrValidation, "Lesson %s listed more than once", raw)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if err := s.lessons.Reorder(ctx, course.ID, ids); err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Lesson not found in this course")
		}
		s.log.Error("Failed to reorder lessons", zap.Error(err), zap.String("course_id", courseID))
		return nil, fmt.Errorf("failed to reorder lessons")
	}

	s.log.Info("Lessons reordered", zap.String("course_id", courseID), zap.Int("count", len(ids)))
	return s.ListByCourse(ctx, courseID)
}

func (s *lessonService) load(ctx context.Context, id string) (*entity.Lesson, error) {
	lessonID, err := parseID(id, "lesson")
	if err != nil {
		return nil, err
	}

	lesson, err := s.lessons.FindByID(ctx, lessonID)
	if err != nil {
		s.log.Error("Failed to find lesson", zap.Error(err), zap.String("lesson_id", id))
		return nil, fmt.Errorf("failed to get lesson")
	}
	if lesson == nil {
		return nil, newError(ErrNotFound, "Lesson not found")
	}
	return lesson, nil
}

func (s *lessonService) manageableCourse(ctx context.Context, actor *Actor, courseID string) (*entity.Course, error) {
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
		return nil, fmt.Errorf("failed to get course")
	}
	if course == nil {
		return nil, newError(ErrNotFound, "Course not found")
	}
	if !course.CanManage(actor.ID, actor.Role) {
		return nil, newError(ErrForbidden, "Access denied")
	}
	return course, nil
}
