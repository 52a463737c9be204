package entity

import (
	"time"
)

type OTPPurpose string

const (
	OTPPurposeRegistration OTPPurpose = "registration"
	OTPPurposeLogin        OTPPurpose = "login"
)

func (p OTPPurpose) Valid() bool {
	return p == OTPPurposeRegistration || p == OTPPurposeLogin
}

// OTP is one issued passcode. Several unconsumed rows may exist for the
// same (email, purpose); verification matches the newest one.
type OTP struct {
	BaseSimple
	Email     string     `db:"email"`
	Code      string     `db:"code"`
	Purpose   OTPPurpose `db:"purpose"`
	ExpiresAt time.Time  `db:"expires_at"`
	IsUsed    bool       `db:"is_used"`
}

// Expired reports whether the record is past its expiry at now.
func (o *OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
