package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms-backend/internal/dto/request"
	"lms-backend/internal/dto/response"
	"lms-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.OTPSentResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.OTPSentResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) VerifyRegistration(ctx context.Context, req *request.VerifyRegistrationRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.OTPSentResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.OTPSentResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) VerifyLogin(ctx context.Context, req *request.VerifyLoginRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) ResendOTP(ctx context.Context, req *request.ResendOTPRequest) (*response.OTPSentResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.OTPSentResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) AdminLogin(ctx context.Context, req *request.AdminLoginRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Me(ctx context.Context, actor *usecase.Actor) (*response.UserResponse, error) {
	args := m.Called(ctx, actor)
	resp, _ := args.Get(0).(*response.UserResponse)
	return resp, args.Error(1)
}

func TestAuthRegister(t *testing.T) {
	svc := &mockAuthService{}
	h := NewAuthHandler(svc, zap.NewNop())

	svc.On("Register", mock.Anything, &request.RegisterRequest{
		Name:       "Dev One",
		Email:      "dev@company.com",
		Role:       "developer",
		Department: "engineering",
	}).Return(&response.OTPSentResponse{Email: "d*v@company.com"}, nil)

	rec := httptest.NewRecorder()
	h.Register(rec, newRequest(http.MethodPost, "/api/auth/register",
		`{"name":"Dev One","email":"dev@company.com","role":"developer","department":"engineering"}`, nil, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Status)
	assert.Equal(t, "OTP sent to your email. Please check your inbox.", env.Message)
	assert.JSONEq(t, `{"email":"d*v@company.com"}`, string(env.Data))
	svc.AssertExpectations(t)
}

func TestAuthRegister_ValidationFailed(t *testing.T) {
	svc := &mockAuthService{}
	h := NewAuthHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Register(rec, newRequest(http.MethodPost, "/api/auth/register", `{"email":"not-an-email"}`, nil, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Contains(t, env.Errors, "Email")
	assert.Contains(t, env.Errors, "Name")
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthVerifyLogin_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"wrong code", ucErr(usecase.ErrInvalidCode, "Invalid or expired OTP"), http.StatusBadRequest},
		{"blocked", ucErr(usecase.ErrBlocked, "Your account has been blocked."), http.StatusForbidden},
		{"unknown user", ucErr(usecase.ErrNotFound, "User not found. Please register first."), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{}
			h := NewAuthHandler(svc, zap.NewNop())
			svc.On("VerifyLogin", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			h.VerifyLogin(rec, newRequest(http.MethodPost, "/api/auth/verify-login",
				`{"email":"dev@company.com","otp":"123456"}`, nil, nil))

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.err.Error(), decodeEnvelope(t, rec).Message)
		})
	}
}

func TestAuthVerifyRegistration_Created(t *testing.T) {
	svc := &mockAuthService{}
	h := NewAuthHandler(svc, zap.NewNop())
	svc.On("VerifyRegistration", mock.Anything, mock.MatchedBy(func(req *request.VerifyRegistrationRequest) bool {
		return req.OTP == "654321" && req.Email == "dev@company.com"
	})).Return(&response.AuthResponse{Token: "jwt"}, nil)

	rec := httptest.NewRecorder()
	h.VerifyRegistration(rec, newRequest(http.MethodPost, "/api/auth/verify-registration",
		`{"name":"Dev One","email":"dev@company.com","role":"developer","department":"engineering","otp":"654321"}`, nil, nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Registration completed successfully", decodeEnvelope(t, rec).Message)
}

func TestAuthMe_Anonymous(t *testing.T) {
	svc := &mockAuthService{}
	h := NewAuthHandler(svc, zap.NewNop())
	svc.On("Me", mock.Anything, (*usecase.Actor)(nil)).
		Return(nil, ucErr(usecase.ErrUnauthorized, "Authentication required"))

	rec := httptest.NewRecorder()
	h.Me(rec, newRequest(http.MethodGet, "/api/auth/me", "", nil, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
