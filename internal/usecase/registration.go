package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"lms-backend/internal/data/entity"
	"lms-backend/internal/data/repository"
	"lms-backend/pkg/utils"
)

// RegistrationPolicy decides whether a self-registering user may claim role
// within department. A rejection is returned as an ErrValidation error.
type RegistrationPolicy interface {
	Check(ctx context.Context, role, department string) error
}

// DepartmentRolePolicy accepts a role when the named department lists it.
type DepartmentRolePolicy struct {
	departments repository.DepartmentRepository
}

func NewDepartmentRolePolicy(departments repository.DepartmentRepository) *DepartmentRolePolicy {
	return &DepartmentRolePolicy{departments: departments}
}

func (p *DepartmentRolePolicy) Check(ctx context.Context, role, department string) error {
	if role == entity.RoleAdmin {
		return newError(ErrValidation, "The admin role cannot be self-registered")
	}

	dept, err := p.departments.FindByName(ctx, department)
	if err != nil {
		return fmt.Errorf("load department %s: %w", department, err)
	}
	if dept == nil {
		return newError(ErrValidation, "Invalid department. Please select a valid department.")
	}
	if !dept.HasRole(role) {
		return newError(ErrValidation, "Invalid role for %s department. Available roles: %s",
			dept.Name, strings.Join(dept.Roles, ", "))
	}

	return nil
}

// AllowListPolicy accepts any department and a fixed set of roles.
type AllowListPolicy struct {
	roles []string
}

func NewAllowListPolicy(roles []string) *AllowListPolicy {
	return &AllowListPolicy{roles: roles}
}

func (p *AllowListPolicy) Check(_ context.Context, role, _ string) error {
	if role == entity.RoleAdmin || !slices.Contains(p.roles, role) {
		return newError(ErrValidation, "Invalid role. Available roles: %s", strings.Join(p.roles, ", "))
	}
	return nil
}

// NewRegistrationPolicy picks the policy named in cfg.
func NewRegistrationPolicy(cfg utils.RegistrationConfig, departments repository.DepartmentRepository) RegistrationPolicy {
	if cfg.Policy == utils.RegistrationPolicyAllowList {
		return NewAllowListPolicy(cfg.Roles)
	}
	return NewDepartmentRolePolicy(departments)
}
