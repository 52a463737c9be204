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

type DepartmentRepository interface {
	Create(ctx context.Context, dept *entity.Department) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Department, error)
	FindByName(ctx context.Context, name string) (*entity.Department, error)
	FindAll(ctx context.Context) ([]*entity.Department, error)
	Update(ctx context.Context, dept *entity.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type departmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDepartmentRepository(db database.PgxIface, log *zap.Logger) DepartmentRepository {
	return &departmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "department")),
	}
}

func scanDepartment(row pgx.Row) (*entity.Department, error) {
	var d entity.Department
	if err := row.Scan(&d.ID, &d.Name, &d.Roles, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *departmentRepository) Create(ctx context.Context, dept *entity.Department) error {
	query := `
		INSERT INTO departments (id, name, roles, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		dept.ID,
		dept.Name,
		dept.Roles,
		dept.Description,
		dept.CreatedAt,
		dept.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create department",
			zap.Error(err),
			zap.String("name", dept.Name),
		)
		return fmt.Errorf("create department %s: %w", dept.Name, err)
	}

	return nil
}

func (r *departmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Department, error) {
	query := `
		SELECT id, name, roles, description, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	dept, err := scanDepartment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find department by ID",
			zap.Error(err),
			zap.String("department_id", id.String()),
		)
		return nil, fmt.Errorf("find department by ID %s: %w", id.String(), err)
	}

	return dept, nil
}

// FindByName matches case-insensitively.
func (r *departmentRepository) FindByName(ctx context.Context, name string) (*entity.Department, error) {
	query := `
		SELECT id, name, roles, description, created_at, updated_at
		FROM departments
		WHERE LOWER(name) = LOWER($1)
	`

	dept, err := scanDepartment(r.db.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find department by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find department by name %s: %w", name, err)
	}

	return dept, nil
}

func (r *departmentRepository) FindAll(ctx context.Context) ([]*entity.Department, error) {
	query := `
		SELECT id, name, roles, description, created_at, updated_at
		FROM departments
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list departments", zap.Error(err))
		return nil, fmt.Errorf("find all departments: %w", err)
	}
	defer rows.Close()

	var depts []*entity.Department
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			r.log.Error("Failed to scan department row", zap.Error(err))
			return nil, fmt.Errorf("scan department row: %w", err)
		}
		depts = append(depts, dept)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate department rows: %w", err)
	}

	return depts, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *entity.Department) error {
	query := `
		UPDATE departments
		SET name = $2, roles = $3, description = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		dept.ID,
		dept.Name,
		dept.Roles,
		dept.Description,
		dept.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update department",
			zap.Error(err),
			zap.String("department_id", dept.ID.String()),
		)
		return fmt.Errorf("update department %s: %w", dept.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("department %s: %w", dept.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM departments WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete department",
			zap.Error(err),
			zap.String("department_id", id.String()),
		)
		return fmt.Errorf("delete department %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("department %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
