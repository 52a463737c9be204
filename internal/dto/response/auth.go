package response

import "time"

// OTPSentResponse confirms delivery was attempted. The code itself is never
// part of it.
type OTPSentResponse struct {
	Email string `json:"email"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
