package adaptor

import (
	"net/http"

	"lms-backend/internal/dto/request"
	"lms-backend/internal/usecase"
	"lms-backend/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "register")
		return
	}

	utils.ResponseSuccess(w, "OTP sent to your email. Please check your inbox.", resp)
}

// VerifyRegistration handles POST /api/auth/verify-registration
func (h *AuthHandler) VerifyRegistration(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyRegistrationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.VerifyRegistration(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "verify registration")
		return
	}

	utils.ResponseCreated(w, "Registration completed successfully", resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "login")
		return
	}

	utils.ResponseSuccess(w, "OTP sent to your email. Please verify to login.", resp)
}

// VerifyLogin handles POST /api/auth/verify-login
func (h *AuthHandler) VerifyLogin(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyLoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.VerifyLogin(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "verify login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// ResendOTP handles POST /api/auth/resend-otp
func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req request.ResendOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.ResendOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "resend OTP")
		return
	}

	utils.ResponseSuccess(w, "New OTP sent to your email", resp)
}

// AdminLogin handles POST /api/auth/admin-login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req request.AdminLoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.AdminLogin(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "admin login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Me(r.Context(), actorFrom(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get current user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", resp)
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so the client
// simply discards its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Logout successful", nil)
}
