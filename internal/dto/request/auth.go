package request

type RegisterRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Role       string `json:"role" validate:"required,max=100"`
	Department string `json:"department" validate:"required,max=255"`
}

type VerifyRegistrationRequest struct {
	RegisterRequest
	OTP string `json:"otp" validate:"required,len=6,numeric"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyLoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type ResendOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"required,oneof=registration login"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
