package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lms-backend/internal/credential"
	"lms-backend/internal/data/entity"
	"lms-backend/internal/data/repository"
	"lms-backend/internal/dto/request"
	"lms-backend/internal/dto/response"
	"lms-backend/pkg/token"
	"lms-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PasscodeIssuer is the part of credential.Issuer the auth flows use.
type PasscodeIssuer interface {
	Issue(ctx context.Context, email string, purpose entity.OTPPurpose) (string, error)
	Verify(ctx context.Context, email, code string, purpose entity.OTPPurpose) (bool, error)
	Purge(ctx context.Context, email string) error
	IssueSession(identity token.Identity) (*credential.Session, error)
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.OTPSentResponse, error)
	VerifyRegistration(ctx context.Context, req *request.VerifyRegistrationRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.OTPSentResponse, error)
	VerifyLogin(ctx context.Context, req *request.VerifyLoginRequest) (*response.AuthResponse, error)
	ResendOTP(ctx context.Context, req *request.ResendOTPRequest) (*response.OTPSentResponse, error)
	AdminLogin(ctx context.Context, req *request.AdminLoginRequest) (*response.AuthResponse, error)
	Me(ctx context.Context, actor *Actor) (*response.UserResponse, error)
}

type authService struct {
	users       repository.UserRepository
	issuer      PasscodeIssuer
	policy      RegistrationPolicy
	emailDomain string
	log         *zap.Logger
	now         func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	issuer PasscodeIssuer,
	policy RegistrationPolicy,
	emailDomain string,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:       users,
		issuer:      issuer,
		policy:      policy,
		emailDomain: emailDomain,
		log:         log.With(zap.String("service", "auth")),
		now:         time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.OTPSentResponse, error) {
	email := utils.NormalizeEmail(req.Email)

	// 1. Check who may register
	if err := s.checkRegistration(ctx, email, req); err != nil {
		return nil, err
	}

	// 2. Email must be unused
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	// 3. Issue and deliver the passcode
	if _, err := s.issuer.Issue(ctx, email, entity.OTPPurposeRegistration); err != nil {
		return nil, fmt.Errorf("failed to send OTP")
	}

	s.log.Info("Registration passcode issued", zap.String("email", email))
	return &response.OTPSentResponse{Email: utils.MaskEmail(email)}, nil
}

func (s *authService) VerifyRegistration(ctx context.Context, req *request.VerifyRegistrationRequest) (*response.AuthResponse, error) {
	email := utils.NormalizeEmail(req.Email)

	// 1. Role and department may have changed since the passcode was sent
	if err := s.checkRegistration(ctx, email, &req.RegisterRequest); err != nil {
		return nil, err
	}

	// 2. Consume the passcode
	if err := s.verifyCode(ctx, email, req.OTP, entity.OTPPurposeRegistration); err != nil {
		return nil, err
	}

	// 3. Email must still be unused
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	// 4. Create the account
	now := s.now()
	department := req.Department
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Role:       req.Role,
		Department: &department,
		Status:     entity.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to create account")
	}

	s.purge(ctx, email)

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", email),
		zap.String("role", user.Role),
	)

	return s.session(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.OTPSentResponse, error) {
	email := utils.NormalizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, newError(ErrNotFound, "User not found. Please register first.")
	}

	if _, err := s.issuer.Issue(ctx, email, entity.OTPPurposeLogin); err != nil {
		return nil, fmt.Errorf("failed to send OTP")
	}

	s.log.Info("Login passcode issued", zap.String("user_id", user.ID.String()))
	return &response.OTPSentResponse{Email: utils.MaskEmail(email)}, nil
}

func (s *authService) VerifyLogin(ctx context.Context, req *request.VerifyLoginRequest) (*response.AuthResponse, error) {
	email := utils.NormalizeEmail(req.Email)

	// 1. Consume the passcode
	if err := s.verifyCode(ctx, email, req.OTP, entity.OTPPurposeLogin); err != nil {
		return nil, err
	}

	// 2. Load the account
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, newError(ErrNotFound, "User not found")
	}

	// 3. Blocked accounts get no session, admins excepted
	if user.IsBlocked() && !user.IsAdmin() {
		s.log.Warn("Blocked user tried to login", zap.String("user_id", user.ID.String()))
		return nil, newError(ErrBlocked, "Your account has been blocked. Please contact an administrator.")
	}

	s.purge(ctx, email)

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	return s.session(user)
}

func (s *authService) ResendOTP(ctx context.Context, req *request.ResendOTPRequest) (*response.OTPSentResponse, error) {
	email := utils.NormalizeEmail(req.Email)
	purpose := entity.OTPPurpose(req.Purpose)
	if !purpose.Valid() {
		return nil, newError(ErrValidation, "Invalid purpose")
	}

	if purpose == entity.OTPPurposeLogin {
		user, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			s.log.Error("Failed to find user", zap.Error(err), zap.String("email", email))
			return nil, fmt.Errorf("failed to find user")
		}
		if user == nil {
			return nil, newError(ErrNotFound, "User not found")
		}
	}

	// Old passcodes stop working once a new one is requested
	if err := s.issuer.Purge(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to reset OTP")
	}

	if _, err := s.issuer.Issue(ctx, email, purpose); err != nil {
		return nil, fmt.Errorf("failed to send OTP")
	}

	return &response.OTPSentResponse{Email: utils.MaskEmail(email)}, nil
}

func (s *authService) AdminLogin(ctx context.Context, req *request.AdminLoginRequest) (*response.AuthResponse, error) {
	email := utils.NormalizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, newError(ErrInvalidCredentials, "Invalid credentials")
	}

	if !user.IsAdmin() {
		s.log.Warn("Non-admin tried admin login", zap.String("user_id", user.ID.String()))
		return nil, newError(ErrForbidden, "Access denied. Admin login only.")
	}

	if user.PasswordHash == nil || !utils.CheckPasswordHash(req.Password, *user.PasswordHash) {
		s.log.Warn("Invalid admin password", zap.String("user_id", user.ID.String()))
		return nil, newError(ErrInvalidCredentials, "Invalid credentials")
	}

	s.log.Info("Admin logged in", zap.String("user_id", user.ID.String()))
	return s.session(user)
}

func (s *authService) Me(ctx context.Context, actor *Actor) (*response.UserResponse, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "Authentication required")
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", actor.ID.String()))
		return nil, fmt.Errorf("failed to get profile")
	}
	if user == nil {
		return nil, newError(ErrNotFound, "User not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) checkRegistration(ctx context.Context, email string, req *request.RegisterRequest) error {
	if s.emailDomain != "" && !strings.HasSuffix(email, "@"+s.emailDomain) {
		return newError(ErrValidation, "Please use an @%s email address", s.emailDomain)
	}

	if err := s.policy.Check(ctx, req.Role, req.Department); err != nil {
		var denied *Error
		if errors.As(err, &denied) {
			return err
		}
		s.log.Error("Registration policy check failed", zap.Error(err))
		return fmt.Errorf("failed to validate registration")
	}

	return nil
}

func (s *authService) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("failed to check email")
	}
	if existing != nil {
		return newError(ErrConflict, "An account with this email already exists.")
	}
	return nil
}

func (s *authService) verifyCode(ctx context.Context, email, code string, purpose entity.OTPPurpose) error {
	ok, err := s.issuer.Verify(ctx, email, code, purpose)
	if err != nil {
		return fmt.Errorf("failed to verify OTP")
	}
	if !ok {
		return newError(ErrInvalidCode, "Invalid or expired OTP")
	}
	return nil
}

// purge failures are logged by the issuer; the session is still granted.
func (s *authService) purge(ctx context.Context, email string) {
	_ = s.issuer.Purge(ctx, email)
}

func (s *authService) session(user *entity.User) (*response.AuthResponse, error) {
	sess, err := s.issuer.IssueSession(IdentityOf(user))
	if err != nil {
		return nil, fmt.Errorf("failed to create session")
	}

	return &response.AuthResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		User:      response.UserToResponse(user),
	}, nil
}

// IdentityOf builds the token identity for user.
func IdentityOf(user *entity.User) token.Identity {
	return token.Identity{
		ID:         user.ID.String(),
		Email:      user.Email,
		Name:       user.Name,
		Role:       user.Role,
		Department: user.Department,
	}
}
