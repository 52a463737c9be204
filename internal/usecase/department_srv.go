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

// DepartmentService manages departments and the role list each one offers
// at registration. Write operations are admin-only at the router.
type DepartmentService interface {
	List(ctx context.Context) ([]response.DepartmentResponse, error)
	Get(ctx context.Context, id string) (*response.DepartmentResponse, error)
	Create(ctx context.Context, req *request.DepartmentRequest) (*response.DepartmentResponse, error)
	Update(ctx context.Context, id string, req *request.DepartmentRequest) (*response.DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type departmentService struct {
	departments repository.DepartmentRepository
	users       repository.UserRepository
	log         *zap.Logger
	now         func() time.Time
}

func NewDepartmentService(departments repository.DepartmentRepository, users repository.UserRepository, log *zap.Logger) DepartmentService {
	return &departmentService{
		departments: departments,
		users:       users,
		log:         log.With(zap.String("service", "department")),
		now:         time.Now,
	}
}

func (s *departmentService) List(ctx context.Context) ([]response.DepartmentResponse, error) {
	depts, err := s.departments.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list departments", zap.Error(err))
		return nil, fmt.Errorf("failed to get departments")
	}
	return response.DepartmentsToResponse(depts), nil
}

func (s *departmentService) Get(ctx context.Context, id string) (*response.DepartmentResponse, error) {
	dept, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.DepartmentToResponse(dept)
	return &resp, nil
}

func (s *departmentService) Create(ctx context.Context, req *request.DepartmentRequest) (*response.DepartmentResponse, error) {
	name := strings.TrimSpace(req.Name)

	if err := s.ensureNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now()
	dept := &entity.Department{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        name,
		Roles:       normalizeRoles(req.Roles),
		Description: req.Description,
	}

	if err := s.departments.Create(ctx, dept); err != nil {
		s.log.Error("Failed to create department", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("failed to create department")
	}

	s.log.Info("Department created", zap.String("department_id", dept.ID.String()), zap.String("name", name))

	resp := response.DepartmentToResponse(dept)
	return &resp, nil
}

func (s *departmentService) Update(ctx context.Context, id string, req *request.DepartmentRequest) (*response.DepartmentResponse, error) {
	dept, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, dept.ID); err != nil {
		return nil, err
	}

	dept.Name = name
	dept.Roles = normalizeRoles(req.Roles)
	dept.Description = req.Description
	dept.UpdatedAt = s.now()

	if err := s.departments.Update(ctx, dept); err != nil {
		s.log.Error("Failed to update department", zap.Error(err), zap.String("department_id", id))
		return nil, fmt.Errorf("failed to update department")
	}

	resp := response.DepartmentToResponse(dept)
	return &resp, nil
}

// Delete refuses while any user still belongs to the department.
func (s *departmentService) Delete(ctx context.Context, id string) error {
	dept, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	members, err := s.users.CountByDepartment(ctx, dept.Name)
	if err != nil {
		s.log.Error("Failed to count department users", zap.Error(err), zap.String("department_id", id))
		return fmt.Errorf("failed to delete department")
	}
	if members > 0 {
		return newError(ErrConflict, "Cannot delete department with %d assigned users", members)
	}

	if err := s.departments.Delete(ctx, dept.ID); err != nil {
		if isNotFound(err) {
			return newError(ErrNotFound, "Department not found")
		}
		s.log.Error("Failed to delete department", zap.Error(err), zap.String("department_id", id))
		return fmt.Errorf("failed to delete department")
	}

	s.log.Info("Department deleted", zap.String("department_id", id), zap.String("name", dept.Name))
	return nil
}

func (s *departmentService) load(ctx context.Context, id string) (*entity.Department, error) {
	deptID, err := parseID(id, "department")
	if err != nil {
		return nil, err
	}

	dept, err := s.departments.FindByID(ctx, deptID)
	if err != nil {
		s.log.Error("Failed to find department", zap.Error(err), zap.String("department_id", id))
		return nil, fmt.Errorf("failed to get department")
	}
	if dept == nil {
		return nil, newError(ErrNotFound, "Department not found")
	}
	return dept, nil
}

// ensureNameFree checks case-insensitive uniqueness, ignoring self.
func (s *departmentService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.departments.FindByName(ctx, name)
	if err != nil {
		s.log.Error("Failed to check department name", zap.Error(err), zap.String("name", name))
		return fmt.Errorf("failed to check department name")
	}
	if existing != nil && existing.ID != self {
		return newError(ErrConflict, "Department %q already exists", existing.Name)
	}
	return nil
}

func normalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	seen := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
