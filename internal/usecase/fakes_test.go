package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"lms-backend/internal/data/entity"
	"lms-backend/internal/data/repository"

	"github.com/google/uuid"
)

type memCourseRepo struct {
	mu         sync.Mutex
	courses    map[uuid.UUID]entity.Course
	lastFilter repository.CourseFilter
}

func newMemCourseRepo(courses ...*entity.Course) *memCourseRepo {
	r := &memCourseRepo{courses: map[uuid.UUID]entity.Course{}}
	for _, c := range courses {
		r.courses[c.ID] = *c
	}
	return r
}

func (r *memCourseRepo) Create(_ context.Context, c *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[c.ID] = *c
	return nil
}

func (r *memCourseRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memCourseRepo) FindAll(_ context.Context, filter repository.CourseFilter, limit, offset int) ([]*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
	out := make([]*entity.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, &c)
	}
	return out, nil
}

func (r *memCourseRepo) CountAll(_ context.Context, filter repository.CourseFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.courses)), nil
}

func (r *memCourseRepo) Update(_ context.Context, c *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[c.ID]; !ok {
		return fmt.Errorf("update course %s: %w", c.ID, repository.ErrNotFound)
	}
	r.courses[c.ID] = *c
	return nil
}

func (r *memCourseRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return fmt.Errorf("set course %s active: %w", id, repository.ErrNotFound)
	}
	c.IsActive = active
	r.courses[id] = c
	return nil
}

func (r *memCourseRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[id]; !ok {
		return fmt.Errorf("delete course %s: %w", id, repository.ErrNotFound)
	}
	delete(r.courses, id)
	return nil
}

type memLessonRepo struct {
	mu      sync.Mutex
	lessons map[uuid.UUID]entity.Lesson
}

func newMemLessonRepo(lessons ...*entity.Lesson) *memLessonRepo {
	r := &memLessonRepo{lessons: map[uuid.UUID]entity.Lesson{}}
	for _, l := range lessons {
		r.lessons[l.ID] = *l
	}
	return r
}

func (r *memLessonRepo) Create(_ context.Context, l *entity.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lessons[l.ID] = *l
	return nil
}

func (r *memLessonRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lessons[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *memLessonRepo) FindByCourse(_ context.Context, courseID uuid.UUID) ([]*entity.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Lesson
	for _, l := range r.lessons {
		if l.CourseID == courseID {
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (r *memLessonRepo) NextOrderIndex(_ context.Context, courseID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := 1
	for _, l := range r.lessons {
		if l.CourseID == courseID && l.OrderIndex >= next {
			next = l.OrderIndex + 1
		}
	}
	return next, nil
}

func (r *memLessonRepo) Update(_ context.Context, l *entity.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lessons[l.ID]; !ok {
		return fmt.Errorf("update lesson %s: %w", l.ID, repository.ErrNotFound)
	}
	r.lessons[l.ID] = *l
	return nil
}

func (r *memLessonRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lessons[id]; !ok {
		return fmt.Errorf("delete lesson %s: %w", id, repository.ErrNotFound)
	}
	delete(r.lessons, id)
	return nil
}

// Reorder applies all positions or none.
func (r *memLessonRepo) Reorder(_ context.Context, courseID uuid.UUID, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if l, ok := r.lessons[id]; !ok || l.CourseID != courseID {
			return fmt.Errorf("reorder lesson %s: %w", id, repository.ErrNotFound)
		}
	}
	for i, id := range ids {
		l := r.lessons[id]
		l.OrderIndex = i + 1
		r.lessons[id] = l
	}
	return nil
}

type memEnrollmentRepo struct {
	mu          sync.Mutex
	enrollments map[uuid.UUID]entity.Enrollment
}

func newMemEnrollmentRepo(list ...*entity.Enrollment) *memEnrollmentRepo {
	r := &memEnrollmentRepo{enrollments: map[uuid.UUID]entity.Enrollment{}}
	for _, e := range list {
		r.enrollments[e.ID] = *e
	}
	return r
}

func (r *memEnrollmentRepo) Create(_ context.Context, e *entity.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enrollments[e.ID] = *e
	return nil
}

func (r *memEnrollmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.enrollments[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *memEnrollmentRepo) FindByUserAndCourse(_ context.Context, userID, courseID uuid.UUID) (*entity.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *memEnrollmentRepo) filter(keep func(entity.Enrollment) bool) []*entity.Enrollment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Enrollment
	for _, e := range r.enrollments {
		if keep(e) {
			out = append(out, &e)
		}
	}
	return out
}

func (r *memEnrollmentRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Enrollment, error) {
	return r.filter(func(e entity.Enrollment) bool { return e.UserID == userID }), nil
}

func (r *memEnrollmentRepo) FindByCourse(_ context.Context, courseID uuid.UUID) ([]*entity.Enrollment, error) {
	return r.filter(func(e entity.Enrollment) bool { return e.CourseID == courseID }), nil
}

func (r *memEnrollmentRepo) FindAll(_ context.Context, status *entity.EnrollmentStatus) ([]*entity.Enrollment, error) {
	return r.filter(func(e entity.Enrollment) bool { return status == nil || e.Status == *status }), nil
}

func (r *memEnrollmentRepo) Update(_ context.Context, e *entity.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.enrollments[e.ID]; !ok {
		return fmt.Errorf("update enrollment %s: %w", e.ID, repository.ErrNotFound)
	}
	r.enrollments[e.ID] = *e
	return nil
}

func (r *memEnrollmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.enrollments[id]; !ok {
		return fmt.Errorf("delete enrollment %s: %w", id, repository.ErrNotFound)
	}
	delete(r.enrollments, id)
	return nil
}

func (r *memEnrollmentRepo) Stats(_ context.Context) (*entity.EnrollmentStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &entity.EnrollmentStats{Total: len(r.enrollments)}
	for _, e := range r.enrollments {
		switch e.Status {
		case entity.EnrollmentStatusActive:
			stats.Active++
		case entity.EnrollmentStatusCompleted:
			stats.Completed++
		case entity.EnrollmentStatusCompletionRequested:
			stats.CompletionRequested++
		case entity.EnrollmentStatusDropped:
			stats.Dropped++
		}
	}
	return stats, nil
}
