package usecase

import (
	"context"
	"errors"
	"testing"

	"lms-backend/internal/data/entity"
	"lms-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentRolePolicy(t *testing.T) {
	ctx := context.Background()
	depts := &mockDepartmentRepo{}
	depts.On("FindByName", ctx, "engineering").Return(&entity.Department{
		Name:  "engineering",
		Roles: []string{"software_engineer", "qa_engineer"},
	}, nil)
	depts.On("FindByName", ctx, "marketing").Return(nil, nil)
	depts.On("FindByName", ctx, "broken").Return(nil, errors.New("db down"))

	policy := NewDepartmentRolePolicy(depts)

	assert.NoError(t, policy.Check(ctx, "qa_engineer", "engineering"))

	err := policy.Check(ctx, "designer", "engineering")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Invalid role for engineering department. Available roles: software_engineer, qa_engineer", err.Error())

	err = policy.Check(ctx, "qa_engineer", "marketing")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Invalid department. Please select a valid department.", err.Error())

	err = policy.Check(ctx, "qa_engineer", "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)

	assert.ErrorIs(t, policy.Check(ctx, entity.RoleAdmin, "engineering"), ErrValidation)
}

func TestAllowListPolicy(t *testing.T) {
	policy := NewAllowListPolicy([]string{"general", "qa_engineer"})
	ctx := context.Background()

	assert.NoError(t, policy.Check(ctx, "general", "anything"))
	assert.ErrorIs(t, policy.Check(ctx, "ceo", "anything"), ErrValidation)
	assert.ErrorIs(t, policy.Check(ctx, entity.RoleAdmin, "anything"), ErrValidation)
}

func TestNewRegistrationPolicy(t *testing.T) {
	depts := &mockDepartmentRepo{}

	p := NewRegistrationPolicy(utils.RegistrationConfig{Policy: utils.RegistrationPolicyAllowList, Roles: []string{"general"}}, depts)
	assert.IsType(t, &AllowListPolicy{}, p)

	p = NewRegistrationPolicy(utils.RegistrationConfig{Policy: utils.RegistrationPolicyDepartment}, depts)
	assert.IsType(t, &DepartmentRolePolicy{}, p)
}
