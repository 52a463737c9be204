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

type LessonRepository interface {
	Create(ctx context.Context, lesson *entity.Lesson) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Lesson, error)
	FindByCourse(ctx context.Context, courseID uuid.UUID) ([]*entity.Lesson, error)
	NextOrderIndex(ctx context.Context, courseID uuid.UUID) (int, error)
	Update(ctx context.Context, lesson *entity.Lesson) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, courseID uuid.UUID, lessonIDs []uuid.UUID) error
}

type lessonRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLessonRepository(db database.PgxIface, log *zap.Logger) LessonRepository {
	return &lessonRepository{
		db:  db,
		log: log.With(zap.String("repository", "lesson")),
	}
}

func scanLesson(row pgx.Row) (*entity.Lesson, error) {
	var l entity.Lesson
	err := row.Scan(
		&l.ID,
		&l.CourseID,
		&l.Title,
		&l.Content,
		&l.VideoURL,
		&l.Duration,
		&l.OrderIndex,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lessonRepository) Create(ctx context.Context, lesson *entity.Lesson) error {
	query := `
		INSERT INTO lessons (id, course_id, title, content, video_url, duration,
		                     order_index, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		lesson.ID,
		lesson.CourseID,
		lesson.Title,
		lesson.Content,
		lesson.VideoURL,
		lesson.Duration,
		lesson.OrderIndex,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create lesson",
			zap.Error(err),
			zap.String("course_id", lesson.CourseID.String()),
		)
		return fmt.Errorf("create lesson for course %s: %w", lesson.CourseID.String(), err)
	}

	return nil
}

func (r *lessonRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lesson, error) {
	query := `
		SELECT id, course_id, title, content, video_url, duration, order_index,
		       created_at, updated_at
		FROM lessons
		WHERE id = $1
	`

	lesson, err := scanLesson(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find lesson by ID",
			zap.Error(err),
			zap.String("lesson_id", id.String()),
		)
		return nil, fmt.Errorf("find lesson by ID %s: %w", id.String(), err)
	}

	return lesson, nil
}

func (r *lessonRepository) FindByCourse(ctx context.Context, courseID uuid.UUID) ([]*entity.Lesson, error) {
	query := `
		SELECT id, course_id, title, content, video_url, duration, order_index,
		       created_at, updated_at
		FROM lessons
		WHERE course_id = $1
		ORDER BY order_index ASC, created_at ASC
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		r.log.Error("Failed to list lessons",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
		)
		return nil, fmt.Errorf("find lessons of course %s: %w", courseID.String(), err)
	}
	defer rows.Close()

	var lessons []*entity.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			r.log.Error("Failed to scan lesson row", zap.Error(err))
			return nil, fmt.Errorf("scan lesson row: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate lesson rows: %w", err)
	}

	return lessons, nil
}

// NextOrderIndex returns one past the highest order_index in the course.
func (r *lessonRepository) NextOrderIndex(ctx context.Context, courseID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(MAX(order_index), 0) + 1 FROM lessons WHERE course_id = $1`

	var next int
	if err := r.db.QueryRow(ctx, query, courseID).Scan(&next); err != nil {
		r.log.Error("Failed to compute next lesson order",
			zap.Error(err),
			zap.String("course_id", courseID.String()),
		)
		return 0, fmt.Errorf("next order index for course %s: %w", courseID.String(), err)
	}

	return next, nil
}

func (r *lessonRepository) Update(ctx context.Context, lesson *entity.Lesson) error {
	query := `
		UPDATE lessons
		SET title = $2, content = $3, video_url = $4, duration = $5,
		    order_index = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		lesson.ID,
		lesson.Title,
		lesson.Content,
		lesson.VideoURL,
		lesson.Duration,
		lesson.OrderIndex,
		lesson.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update lesson",
			zap.Error(err),
			zap.String("lesson_id", lesson.ID.String()),
		)
		return fmt.Errorf("update lesson %s: %w", lesson.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lesson %s: %w", lesson.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *lessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM lessons WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete lesson",
			zap.Error(err),
			zap.String("lesson_id", id.String()),
		)
		return fmt.Errorf("delete lesson %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lesson %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

// Reorder assigns order_index = position+1 to each lesson in one
// transaction. Every id must belong to courseID or nothing is changed.
func (r *lessonRepository) Reorder(ctx context.Context, courseID uuid.UUID, lessonIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin reorder transaction", zap.Error(err))
		return fmt.Errorf("begin reorder of course %s: %w", courseID.String(), err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `UPDATE lessons SET order_index = $1, updated_at = NOW() WHERE id = $2 AND course_id = $3`

	for i, id := range lessonIDs {
		result, err := tx.Exec(ctx, query, i+1, id, courseID)
		if err != nil {
			r.log.Error("Failed to reorder lesson",
				zap.Error(err),
				zap.String("lesson_id", id.String()),
			)
			return fmt.Errorf("reorder lesson %s: %w", id.String(), err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("lesson %s in course %s: %w", id.String(), courseID.String(), ErrNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit reorder", zap.Error(err))
		return fmt.Errorf("commit reorder of course %s: %w", courseID.String(), err)
	}

	return nil
}
