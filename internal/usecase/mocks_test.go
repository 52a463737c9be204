package usecase

import (
	"context"
	"io"
	"time"

	"lms-backend/internal/credential"
	"lms-backend/internal/data/entity"
	"lms-backend/pkg/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, limit, offset)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) CountByDepartment(ctx context.Context, department string) (int64, error) {
	args := m.Called(ctx, department)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) GetAccountStatus(ctx context.Context, id string) (entity.UserStatus, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.UserStatus), args.Error(1)
}

type mockDepartmentRepo struct{ mock.Mock }

func (m *mockDepartmentRepo) Create(ctx context.Context, dept *entity.Department) error {
	return m.Called(ctx, dept).Error(0)
}

func (m *mockDepartmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Department, error) {
	args := m.Called(ctx, id)
	dept, _ := args.Get(0).(*entity.Department)
	return dept, args.Error(1)
}

func (m *mockDepartmentRepo) FindByName(ctx context.Context, name string) (*entity.Department, error) {
	args := m.Called(ctx, name)
	dept, _ := args.Get(0).(*entity.Department)
	return dept, args.Error(1)
}

func (m *mockDepartmentRepo) FindAll(ctx context.Context) ([]*entity.Department, error) {
	args := m.Called(ctx)
	depts, _ := args.Get(0).([]*entity.Department)
	return depts, args.Error(1)
}

func (m *mockDepartmentRepo) Update(ctx context.Context, dept *entity.Department) error {
	return m.Called(ctx, dept).Error(0)
}

func (m *mockDepartmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockAssetRepo struct{ mock.Mock }

func (m *mockAssetRepo) FindByType(ctx context.Context, assetType string) (*entity.CompanyAsset, error) {
	args := m.Called(ctx, assetType)
	asset, _ := args.Get(0).(*entity.CompanyAsset)
	return asset, args.Error(1)
}

func (m *mockAssetRepo) FindAll(ctx context.Context) ([]*entity.CompanyAsset, error) {
	args := m.Called(ctx)
	assets, _ := args.Get(0).([]*entity.CompanyAsset)
	return assets, args.Error(1)
}

func (m *mockAssetRepo) Upsert(ctx context.Context, asset *entity.CompanyAsset) (*entity.CompanyAsset, error) {
	args := m.Called(ctx, asset)
	stored, _ := args.Get(0).(*entity.CompanyAsset)
	return stored, args.Error(1)
}

type mockIssuer struct{ mock.Mock }

func (m *mockIssuer) Issue(ctx context.Context, email string, purpose entity.OTPPurpose) (string, error) {
	args := m.Called(ctx, email, purpose)
	return args.String(0), args.Error(1)
}

func (m *mockIssuer) Verify(ctx context.Context, email, code string, purpose entity.OTPPurpose) (bool, error) {
	args := m.Called(ctx, email, code, purpose)
	return args.Bool(0), args.Error(1)
}

func (m *mockIssuer) Purge(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockIssuer) IssueSession(identity token.Identity) (*credential.Session, error) {
	args := m.Called(identity)
	sess, _ := args.Get(0).(*credential.Session)
	return sess, args.Error(1)
}

type mockStorage struct{ mock.Mock }

func (m *mockStorage) EnsureBucket(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, r, size, contentType).Error(0)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockStorage) URL(key string) string {
	return m.Called(key).String(0)
}

func (m *mockStorage) Bucket() string {
	return m.Called().String(0)
}

// fixedNow is the clock every service test runs at.
var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func newActor(role string, department *string) *Actor {
	return &Actor{ID: uuid.New(), Role: role, Department: department}
}
