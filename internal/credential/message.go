package credential

import (
	"bytes"
	"fmt"
	"html/template"

	"lms-backend/internal/data/entity"
)

var passcodeHTML = template.Must(template.New("passcode").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: 'Segoe UI', Tahoma, sans-serif; background-color: #f5f5f5;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px;">
    <h2 style="color: #333;">{{.Heading}}</h2>
    <p style="color: #666; line-height: 1.6;">{{.Intro}}</p>
    <div style="border: 2px dashed #667eea; border-radius: 10px; padding: 20px; text-align: center;">
      <p style="margin: 0; font-weight: 600;">Your Verification Code</p>
      <div style="font-size: 32px; font-weight: bold; color: #667eea; letter-spacing: 5px;">{{.Code}}</div>
      <p style="margin: 0; color: #666; font-size: 14px;">This code expires in {{.Minutes}} minutes</p>
    </div>
    <p style="color: #666;">If you didn't request this code, please ignore this email.</p>
  </div>
</body>
</html>`))

type passcodeView struct {
	Heading string
	Intro   string
	Code    string
	Minutes int
}

func composeMessage(otp *entity.OTP) Message {
	minutes := int(PasscodeTTL.Minutes())

	view := passcodeView{
		Heading: "Login Verification",
		Intro:   "To securely access your account, please use the verification code below:",
		Code:    otp.Code,
		Minutes: minutes,
	}
	subject := "Login - Your Verification Code"

	if otp.Purpose == entity.OTPPurposeRegistration {
		view.Heading = "Welcome!"
		view.Intro = "Thank you for joining. To complete your registration, please use the verification code below:"
		subject = "Welcome - Your Verification Code"
	}

	var html bytes.Buffer
	if err := passcodeHTML.Execute(&html, view); err != nil {
		html.Reset()
	}

	return Message{
		To:      otp.Email,
		Subject: subject,
		Text:    fmt.Sprintf("Your verification code is: %s. This code will expire in %d minutes.", otp.Code, minutes),
		HTML:    html.String(),
	}
}
