package repository

import (
	"context"
	"errors"
	"fmt"

	"lms-backend/internal/data/entity"
	"lms-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, e *entity.Enrollment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Enrollment, error)
	FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*entity.Enrollment, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Enrollment, error)
	FindByCourse(ctx context.Context, courseID uuid.UUID) ([]*entity.Enrollment, error)
	FindAll(ctx context.Context, status *entity.EnrollmentStatus) ([]*entity.Enrollment, error)
	Update(ctx context.Context, e *entity.Enrollment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*entity.EnrollmentStats, error)
}

type enrollmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEnrollmentRepository(db database.PgxIface, log *zap.Logger) EnrollmentRepository {
	return &enrollmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "enrollment")),
	}
}

const enrollmentSelect = `
	SELECT e.id, e.user_id, e.course_id, e.status, e.progress, e.enrolled_at,
	       e.completion_requested_at, e.completion_notes, e.completed_at,
	       e.admin_approved_at, e.admin_approved_by, e.created_at,
	       u.name, u.email, c.title
	FROM enrollments e
	LEFT JOIN users u ON u.id = e.user_id
	LEFT JOIN courses c ON c.id = e.course_id
`

func scanEnrollment(row pgx.Row) (*entity.Enrollment, error) {
	var e entity.Enrollment
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.CourseID,
		&e.Status,
		&e.Progress,
		&e.EnrolledAt,
		&e.CompletionRequestedAt,
		&e.CompletionNotes,
		&e.CompletedAt,
		&e.AdminApprovedAt,
		&e.AdminApprovedBy,
		&e.CreatedAt,
		&e.UserName,
		&e.UserEmail,
		&e.CourseTitle,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *enrollmentRepository) queryList(ctx context.Context, query string, args ...any) ([]*entity.Enrollment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan enrollment row: %w", err)
		}
		list = append(list, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollment rows: %w", err)
	}

	return list, nil
}

func (r *enrollmentRepository) Create(ctx context.Context, e *entity.Enrollment) error {
	query := `
		INSERT INTO enrollments (id, user_id, course_id, status, progress,
		                         enrolled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		e.ID,
		e.UserID,
		e.CourseID,
		e.Status,
		e.Progress,
		e.EnrolledAt,
		e.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create enrollment",
			zap.Error(err),
			zap.String("user_id", e.UserID.String()),
			zap.String("course_id", e.CourseID.String()),
		)
		return fmt.Errorf("create enrollment of user %s in course %s: %w", e.UserID.String(), e.CourseID.String(), err)
	}

	return nil
}

func (r *enrollmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Enrollment, error) {
	e, err := scanEnrollment(r.db.QueryRow(ctx, enrollmentSelect+` WHERE e.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find enrollment by ID",
			zap.Error(err),
			zap.String("enrollment_id", id.String()),
		)
		return nil, fmt.Errorf("find enrollment by ID %s: %w", id.String(), err)
	}

	return e, nil
}

func (r *enrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*entity.Enrollment, error) {
	query := enrollmentSelect + ` WHERE e.user_id = $1 AND e.course_id = $2`

	e, err := scanEnrollment(r.db.QueryRow(ctx, query, userID, courseID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find enrollment",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("course_id", courseID.String()),
		)
		return nil, fmt.Errorf("find enrollment of user %s in course %s: %w", userID.String(), courseID.String(), err)
	}

	return e, nil
}

func (r *enrollmentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Enrollment, error) {
	list, err := r.queryList(ctx, enrollmentSelect+` WHERE e.user_id = $1 ORDER BY e.enrolled_at DESC`, userID)
	if err != nil {
		r.log.Error("Failed to list user enrollments",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find enrollments of user %s: %w", userID.String(), err)
	}
	return list, nil
}

func (r *enrollmentRepository) FindByCourse(ctx context.Context, courseID uuid.UUID) ([]*entity.Enrollment, error) {
	list, err := r.queryList(ctx, enrollmentSelect+` WHERE e.course_id = $1 ORDER BY e.enrolled_at DESC`, courseID)
	if err != nil {
		r.log.Error("Failed to list course enrollments",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
		)
		return nil, fmt.Errorf("find enrollments of course %s: %w", courseID.String(), err)
	}
	return list, nil
}

// FindAll lists every enrollment, optionally narrowed to one status.
func (r *enrollmentRepository) FindAll(ctx context.Context, status *entity.EnrollmentStatus) ([]*entity.Enrollment, error) {
	query := enrollmentSelect
	var args []any
	if status != nil {
		query += ` WHERE e.status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY e.enrolled_at DESC`

	list, err := r.queryList(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list enrollments", zap.Error(err))
		return nil, fmt.Errorf("find enrollments: %w", err)
	}
	return list, nil
}

func (r *enrollmentRepository) Update(ctx context.Context, e *entity.Enrollment) error {
	query := `
		UPDATE enrollments
		SET status = $2, progress = $3, completion_requested_at = $4,
		    completion_notes = $5, completed_at = $6, admin_approved_at = $7,
		    admin_approved_by = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		e.ID,
		e.Status,
		e.Progress,
		e.CompletionRequestedAt,
		e.CompletionNotes,
		e.CompletedAt,
		e.AdminApprovedAt,
		e.AdminApprovedBy,
	)
	if err != nil {
		r.log.Error("Failed to update enrollment",
			zap.Error(err),
			zap.String("enrollment_id", e.ID.String()),
		)
		return fmt.Errorf("update enrollment %s: %w", e.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("enrollment %s: %w", e.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *enrollmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete enrollment",
			zap.Error(err),
			zap.String("enrollment_id", id.String()),
		)
		return fmt.Errorf("delete enrollment %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("enrollment %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *enrollmentRepository) Stats(ctx context.Context) (*entity.EnrollmentStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'active'),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE status = 'completion_requested'),
		       COUNT(*) FILTER (WHERE status = 'dropped')
		FROM enrollments
	`

	var s entity.EnrollmentStats
	err := r.db.QueryRow(ctx, query).Scan(
		&s.Total,
		&s.Active,
		&s.Completed,
		&s.CompletionRequested,
		&s.Dropped,
	)
	if err != nil {
		r.log.Error("Failed to compute enrollment stats", zap.Error(err))
		return nil, fmt.Errorf("enrollment stats: %w", err)
	}

	return &s, nil
}
