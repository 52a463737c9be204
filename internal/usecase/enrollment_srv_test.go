package usecase

import (
	"context"
	"testing"
	"time"

	"lms-backend/internal/data/entity"
	"lms-backend/internal/data/repository"
	"lms-backend/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEnrollmentFixture(t *testing.T, courses ...*entity.Course) (EnrollmentService, *memEnrollmentRepo) {
	t.Helper()
	enrollments := newMemEnrollmentRepo()
	svc := NewEnrollmentService(&repository.Repository{
		Course:     newMemCourseRepo(courses...),
		Enrollment: enrollments,
	}, zap.NewNop())
	svc.(*enrollmentService).now = func() time.Time { return fixedNow }
	return svc, enrollments
}

func TestEnroll(t *testing.T) {
	ctx := context.Background()
	open := newCourse(uuid.New(), "engineering", true)
	closed := newCourse(uuid.New(), "engineering", false)
	svc, _ := newEnrollmentFixture(t, open, closed)
	learner := newActor("developer", nil)

	resp, err := svc.Enroll(ctx, learner, &request.EnrollRequest{CourseID: open.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, fixedNow, resp.EnrolledAt)

	_, err = svc.Enroll(ctx, learner, &request.EnrollRequest{CourseID: open.ID.String()})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Enroll(ctx, learner, &request.EnrollRequest{CourseID: closed.ID.String()})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Enroll(ctx, learner, &request.EnrollRequest{CourseID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrNotFound)

	check, err := svc.Check(ctx, learner, open.ID.String())
	require.NoError(t, err)
	assert.True(t, check.Enrolled)

	check, err = svc.Check(ctx, newActor("developer", nil), open.ID.String())
	require.NoError(t, err)
	assert.False(t, check.Enrolled)
}

func TestEnrollmentCompletionLifecycle(t *testing.T) {
	ctx := context.Background()
	course := newCourse(uuid.New(), "engineering", true)
	svc, repo := newEnrollmentFixture(t, course)
	learner := newActor("developer", nil)
	admin := newActor(entity.RoleAdmin, nil)

	e, err := svc.Enroll(ctx, learner, &request.EnrollRequest{CourseID: course.ID.String()})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, admin, e.ID)
	assert.ErrorIs(t, err, ErrValidation, "approve needs a pending request")

	_, err = svc.RequestCompletion(ctx, newActor("developer", nil), e.ID, &request.CompletionRequest{})
	assert.ErrorIs(t, err, ErrForbidden, "only the owner may request")

	resp, err := svc.RequestCompletion(ctx, learner, e.ID, &request.CompletionRequest{Notes: strPtr("all done")})
	require.NoError(t, err)
	assert.Equal(t, "completion_requested", resp.Status)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = svc.Approve(ctx, learner, e.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	resp, err = svc.Reject(ctx, admin, e.ID, &request.CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	require.NotNil(t, resp.CompletionNotes)
	assert.Equal(t, "Completion request rejected", *resp.CompletionNotes)

	_, err = svc.RequestCompletion(ctx, learner, e.ID, &request.CompletionRequest{})
	require.NoError(t, err)
	resp, err = svc.Approve(ctx, admin, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.AdminApprovedBy)
	assert.Equal(t, admin.ID.String(), *resp.AdminApprovedBy)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Completed)

	id := uuid.MustParse(e.ID)
	assert.Equal(t, entity.EnrollmentStatusCompleted, repo.enrollments[id].Status)
}

func TestEnrollmentProgressAndDelete(t *testing.T) {
	ctx := context.Background()
	course := newCourse(uuid.New(), "engineering", true)
	svc, repo := newEnrollmentFixture(t, course)
	learner := newActor("developer", nil)

	e, err := svc.Enroll(ctx, learner, &request.EnrollRequest{CourseID: course.ID.String()})
	require.NoError(t, err)

	_, err = svc.UpdateProgress(ctx, learner, e.ID, &request.ProgressRequest{Progress: 101})
	assert.ErrorIs(t, err, ErrValidation)

	resp, err := svc.UpdateProgress(ctx, learner, e.ID, &request.ProgressRequest{Progress: 60})
	require.NoError(t, err)
	assert.Equal(t, 60, resp.Progress)

	assert.ErrorIs(t, svc.Delete(ctx, newActor("developer", nil), e.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, newActor(entity.RoleAdmin, nil), e.ID))
	assert.Empty(t, repo.enrollments)
}

func TestEnrollmentListByCourse_InstructorOnly(t *testing.T) {
	ctx := context.Background()
	instructor := newActor("principal_software_engineer", nil)
	course := newCourse(instructor.ID, "engineering", true)
	svc, _ := newEnrollmentFixture(t, course)

	_, err := svc.Enroll(ctx, newActor("developer", nil), &request.EnrollRequest{CourseID: course.ID.String()})
	require.NoError(t, err)

	list, err := svc.ListByCourse(ctx, instructor, course.ID.String())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListByCourse(ctx, newActor("developer", nil), course.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)
}
