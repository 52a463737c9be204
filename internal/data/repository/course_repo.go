package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lms-backend/internal/data/entity"
	"lms-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CourseFilter narrows course listings. A nil Departments slice means every
// department is visible.
type CourseFilter struct {
	Departments     []string
	IncludeInactive bool
	Search          string
	InstructorID    *uuid.UUID
}

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error)
	FindAll(ctx context.Context, filter CourseFilter, limit, offset int) ([]*entity.Course, error)
	CountAll(ctx context.Context, filter CourseFilter) (int64, error)
	Update(ctx context.Context, course *entity.Course) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCourseRepository(db database.PgxIface, log *zap.Logger) CourseRepository {
	return &courseRepository{
		db:  db,
		log: log.With(zap.String("repository", "course")),
	}
}

const courseSelect = `
	SELECT c.id, c.title, c.description, c.category, c.department, c.price,
	       c.duration, c.image_url, c.document_url, c.external_link,
	       c.instructor_id, c.is_active, c.created_at, c.updated_at,
	       u.name, u.email,
	       (SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id)
	FROM courses c
	LEFT JOIN users u ON u.id = c.instructor_id
`

func scanCourse(row pgx.Row) (*entity.Course, error) {
	var c entity.Course
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Category,
		&c.Department,
		&c.Price,
		&c.Duration,
		&c.ImageURL,
		&c.DocumentURL,
		&c.ExternalLink,
		&c.InstructorID,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.InstructorName,
		&c.InstructorEmail,
		&c.LessonCount,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// whereClause renders filter as SQL conditions starting at placeholder $1.
func (f CourseFilter) whereClause() (string, []any) {
	var conds []string
	var args []any

	if f.Departments != nil {
		args = append(args, f.Departments)
		conds = append(conds, fmt.Sprintf("c.department = ANY($%d)", len(args)))
	}
	if !f.IncludeInactive {
		conds = append(conds, "c.is_active = true")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		conds = append(conds, fmt.Sprintf("(c.title ILIKE $%d OR c.description ILIKE $%d)", len(args), len(args)))
	}
	if f.InstructorID != nil {
		args = append(args, *f.InstructorID)
		conds = append(conds, fmt.Sprintf("c.instructor_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *courseRepository) Create(ctx context.Context, course *entity.Course) error {
	query := `
		INSERT INTO courses (id, title, description, category, department, price,
		                     duration, image_url, document_url, external_link,
		                     instructor_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		course.Category,
		course.Department,
		course.Price,
		course.Duration,
		course.ImageURL,
		course.DocumentURL,
		course.ExternalLink,
		course.InstructorID,
		course.IsActive,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create course",
			zap.Error(err),
			zap.String("title", course.Title),
		)
		return fmt.Errorf("create course %s: %w", course.Title, err)
	}

	return nil
}

func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	query := courseSelect + ` WHERE c.id = $1`

	course, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find course by ID",
			zap.Error(err),
			zap.String("course_id", id.String()),
		)
		return nil, fmt.Errorf("find course by ID %s: %w", id.String(), err)
	}

	return course, nil
}

func (r *courseRepository) FindAll(ctx context.Context, filter CourseFilter, limit, offset int) ([]*entity.Course, error) {
	var qb strings.Builder
	qb.WriteString(courseSelect)

	where, args := filter.whereClause()
	qb.WriteString(where)
	qb.WriteString(fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		r.log.Error("Failed to find courses",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find courses: %w", err)
	}
	defer rows.Close()

	var courses []*entity.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			r.log.Error("Failed to scan course row", zap.Error(err))
			return nil, fmt.Errorf("scan course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate course rows: %w", err)
	}

	r.log.Debug("Courses found", zap.Int("count", len(courses)))
	return courses, nil
}

func (r *courseRepository) CountAll(ctx context.Context, filter CourseFilter) (int64, error) {
	where, args := filter.whereClause()
	query := `SELECT COUNT(*) FROM courses c` + where

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count courses", zap.Error(err))
		return 0, fmt.Errorf("count courses: %w", err)
	}

	return total, nil
}

func (r *courseRepository) Update(ctx context.Context, course *entity.Course) error {
	query := `
		UPDATE courses
		SET title = $2, description = $3, category = $4, department = $5,
		    price = $6, duration = $7, image_url = $8, document_url = $9,
		    external_link = $10, is_active = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		course.Category,
		course.Department,
		course.Price,
		course.Duration,
		course.ImageURL,
		course.DocumentURL,
		course.ExternalLink,
		course.IsActive,
		course.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update course",
			zap.Error(err),
			zap.String("course_id", course.ID.String()),
		)
		return fmt.Errorf("update course %s: %w", course.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("course %s: %w", course.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *courseRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE courses SET is_active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to set course activity",
			zap.Error(err),
			zap.String("course_id", id.String()),
			zap.Bool("active", active),
		)
		return fmt.Errorf("set course %s active=%t: %w", id.String(), active, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("course %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM courses WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete course",
			zap.Error(err),
			zap.String("course_id", id.String()),
		)
		return fmt.Errorf("delete course %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("course %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Course deleted", zap.String("course_id", id.String()))
	return nil
}
