package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"lms-backend/internal/credential"
	"lms-backend/internal/data/entity"
	"lms-backend/internal/dto/request"
	"lms-backend/pkg/token"
	"lms-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	svc    AuthService
	users  *mockUserRepo
	issuer *mockIssuer
}

func newAuthFixture(t *testing.T, emailDomain string) *authFixture {
	t.Helper()

	users := &mockUserRepo{}
	issuer := &mockIssuer{}
	policy := NewAllowListPolicy([]string{"developer", "qa_engineer"})

	svc := NewAuthService(users, issuer, policy, emailDomain, zap.NewNop())
	svc.(*authService).now = func() time.Time { return fixedNow }

	t.Cleanup(func() {
		users.AssertExpectations(t)
		issuer.AssertExpectations(t)
	})

	return &authFixture{svc: svc, users: users, issuer: issuer}
}

func existingUser(email, role string, status entity.UserStatus) *entity.User {
	return &entity.User{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: fixedNow},
		Name:         "Existing",
		Email:        email,
		Role:         role,
		Status:       status,
	}
}

func session() *credential.Session {
	return &credential.Session{Token: "signed.jwt.token", ExpiresAt: fixedNow.Add(credential.SessionTTL)}
}

func TestRegister_IssuesPasscodeAndMasksEmail(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()

	f.users.On("FindByEmail", ctx, "alice@x.com").Return(nil, nil)
	f.issuer.On("Issue", ctx, "alice@x.com", entity.OTPPurposeRegistration).Return("123456", nil)

	resp, err := f.svc.Register(ctx, &request.RegisterRequest{
		Name:       "Alice",
		Email:      "  Alice@X.com ",
		Role:       "developer",
		Department: "engineering",
	})

	require.NoError(t, err)
	assert.Equal(t, "al***@x.com", resp.Email)
}

func TestRegister_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("email domain", func(t *testing.T) {
		f := newAuthFixture(t, "corp.com")

		_, err := f.svc.Register(ctx, &request.RegisterRequest{Name: "A", Email: "a@gmail.com", Role: "developer", Department: "eng"})

		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "Please use an @corp.com email address", err.Error())
		f.issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("role outside policy", func(t *testing.T) {
		f := newAuthFixture(t, "")

		_, err := f.svc.Register(ctx, &request.RegisterRequest{Name: "A", Email: "a@x.com", Role: "admin", Department: "eng"})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("email taken", func(t *testing.T) {
		f := newAuthFixture(t, "")
		f.users.On("FindByEmail", ctx, "a@x.com").Return(existingUser("a@x.com", "developer", entity.UserStatusActive), nil)

		_, err := f.svc.Register(ctx, &request.RegisterRequest{Name: "A", Email: "a@x.com", Role: "developer", Department: "eng"})

		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, "An account with this email already exists.", err.Error())
	})

	t.Run("persist failure", func(t *testing.T) {
		f := newAuthFixture(t, "")
		f.users.On("FindByEmail", ctx, "a@x.com").Return(nil, nil)
		f.issuer.On("Issue", ctx, "a@x.com", entity.OTPPurposeRegistration).Return("", credential.ErrPersist)

		_, err := f.svc.Register(ctx, &request.RegisterRequest{Name: "A", Email: "a@x.com", Role: "developer", Department: "eng"})

		require.Error(t, err)
		var typed *Error
		assert.False(t, errors.As(err, &typed), "store failures are internal errors")
	})
}

func TestVerifyRegistration_CreatesActiveUserAndSession(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()

	f.issuer.On("Verify", ctx, "alice@x.com", "123456", entity.OTPPurposeRegistration).Return(true, nil)
	f.users.On("FindByEmail", ctx, "alice@x.com").Return(nil, nil)
	f.users.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "alice@x.com" &&
			u.Role == "developer" &&
			u.Status == entity.UserStatusActive &&
			u.Department != nil && *u.Department == "engineering" &&
			u.CreatedAt.Equal(fixedNow)
	})).Return(nil)
	f.issuer.On("Purge", ctx, "alice@x.com").Return(nil)
	f.issuer.On("IssueSession", mock.MatchedBy(func(id token.Identity) bool {
		return id.Email == "alice@x.com" && id.Role == "developer" && id.Department != nil
	})).Return(session(), nil)

	resp, err := f.svc.VerifyRegistration(ctx, &request.VerifyRegistrationRequest{
		RegisterRequest: request.RegisterRequest{Name: "Alice", Email: "alice@x.com", Role: "developer", Department: "engineering"},
		OTP:             "123456",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.Equal(t, "alice@x.com", resp.User.Email)
	assert.Equal(t, "active", resp.User.Status)
}

func TestVerifyRegistration_WrongCodeCreatesNothing(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()

	f.issuer.On("Verify", ctx, "alice@x.com", "000000", entity.OTPPurposeRegistration).Return(false, nil)

	_, err := f.svc.VerifyRegistration(ctx, &request.VerifyRegistrationRequest{
		RegisterRequest: request.RegisterRequest{Name: "Alice", Email: "alice@x.com", Role: "developer", Department: "engineering"},
		OTP:             "000000",
	})

	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.Equal(t, "Invalid or expired OTP", err.Error())
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.issuer.AssertNotCalled(t, "IssueSession", mock.Anything)
}

func TestLogin_UnknownUser(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()

	f.users.On("FindByEmail", ctx, "ghost@x.com").Return(nil, nil)

	_, err := f.svc.Login(ctx, &request.LoginRequest{Email: "ghost@x.com"})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "User not found. Please register first.", err.Error())
	f.issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyLogin_BlockedUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked member gets no session", func(t *testing.T) {
		f := newAuthFixture(t, "")
		f.issuer.On("Verify", ctx, "bob@x.com", "111111", entity.OTPPurposeLogin).Return(true, nil)
		f.users.On("FindByEmail", ctx, "bob@x.com").Return(existingUser("bob@x.com", "developer", entity.UserStatusBlocked), nil)

		_, err := f.svc.VerifyLogin(ctx, &request.VerifyLoginRequest{Email: "bob@x.com", OTP: "111111"})

		assert.ErrorIs(t, err, ErrBlocked)
		f.issuer.AssertNotCalled(t, "IssueSession", mock.Anything)
	})

	t.Run("blocked admin still logs in", func(t *testing.T) {
		f := newAuthFixture(t, "")
		f.issuer.On("Verify", ctx, "root@x.com", "111111", entity.OTPPurposeLogin).Return(true, nil)
		f.users.On("FindByEmail", ctx, "root@x.com").Return(existingUser("root@x.com", entity.RoleAdmin, entity.UserStatusBlocked), nil)
		f.issuer.On("Purge", ctx, "root@x.com").Return(nil)
		f.issuer.On("IssueSession", mock.Anything).Return(session(), nil)

		resp, err := f.svc.VerifyLogin(ctx, &request.VerifyLoginRequest{Email: "root@x.com", OTP: "111111"})

		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, resp.User.Role)
	})
}

func TestVerifyLogin_PurgeFailureStillGrantsSession(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()

	f.issuer.On("Verify", ctx, "bob@x.com", "111111", entity.OTPPurposeLogin).Return(true, nil)
	f.users.On("FindByEmail", ctx, "bob@x.com").Return(existingUser("bob@x.com", "developer", entity.UserStatusActive), nil)
	f.issuer.On("Purge", ctx, "bob@x.com").Return(errors.New("db down"))
	f.issuer.On("IssueSession", mock.Anything).Return(session(), nil)

	resp, err := f.svc.VerifyLogin(ctx, &request.VerifyLoginRequest{Email: "bob@x.com", OTP: "111111"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestResendOTP_PurgesBeforeIssuing(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()

	f.users.On("FindByEmail", ctx, "bob@x.com").Return(existingUser("bob@x.com", "developer", entity.UserStatusActive), nil)
	purge := f.issuer.On("Purge", ctx, "bob@x.com").Return(nil)
	f.issuer.On("Issue", ctx, "bob@x.com", entity.OTPPurposeLogin).Return("222222", nil).NotBefore(purge)

	resp, err := f.svc.ResendOTP(ctx, &request.ResendOTPRequest{Email: "bob@x.com", Purpose: "login"})

	require.NoError(t, err)
	assert.Equal(t, "bo***@x.com", resp.Email)
}

func TestResendOTP_RegistrationSkipsUserCheck(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()

	f.issuer.On("Purge", ctx, "new@x.com").Return(nil)
	f.issuer.On("Issue", ctx, "new@x.com", entity.OTPPurposeRegistration).Return("333333", nil)

	_, err := f.svc.ResendOTP(ctx, &request.ResendOTPRequest{Email: "new@x.com", Purpose: "registration"})

	require.NoError(t, err)
	f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret!")
	require.NoError(t, err)

	admin := existingUser("root@x.com", entity.RoleAdmin, entity.UserStatusActive)
	admin.PasswordHash = &hash

	tests := []struct {
		name     string
		user     *entity.User
		password string
		wantErr  error
	}{
		{name: "unknown email", user: nil, password: "s3cret!", wantErr: ErrInvalidCredentials},
		{name: "not an admin", user: existingUser("root@x.com", "developer", entity.UserStatusActive), password: "s3cret!", wantErr: ErrForbidden},
		{name: "wrong password", user: admin, password: "nope", wantErr: ErrInvalidCredentials},
		{name: "admin without password", user: existingUser("root@x.com", entity.RoleAdmin, entity.UserStatusActive), password: "s3cret!", wantErr: ErrInvalidCredentials},
		{name: "success", user: admin, password: "s3cret!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t, "")
			f.users.On("FindByEmail", ctx, "root@x.com").Return(tt.user, nil)
			if tt.wantErr == nil {
				f.issuer.On("IssueSession", mock.Anything).Return(session(), nil)
			}

			resp, err := f.svc.AdminLogin(ctx, &request.AdminLoginRequest{Email: "root@x.com", Password: tt.password})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "signed.jwt.token", resp.Token)
		})
	}
}

func TestMe(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()
	user := existingUser("me@x.com", "developer", entity.UserStatusActive)

	f.users.On("FindByID", ctx, user.ID).Return(user, nil)

	resp, err := f.svc.Me(ctx, &Actor{ID: user.ID, Role: user.Role})
	require.NoError(t, err)
	assert.Equal(t, "me@x.com", resp.Email)

	_, err = f.svc.Me(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
