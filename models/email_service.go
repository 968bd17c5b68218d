package models

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
}

func NewEmailService() (*EmailService, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	dialer := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return &EmailService{dialer: dialer}, nil
}

func (s *EmailService) SendOTPEmail(toEmail, otp string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Password Reset OTP - ProShop")

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
        <h2 style="color: #333;">Password Reset Request</h2>
        <p>Hello,</p>
        <p>You have requested to reset your password. Please use the following One-Time Password (OTP) to proceed:</p>
        <div style="border: 2px dashed #1d4ed8; padding: 20px; text-align: center; margin: 30px 0; border-radius: 8px;">
            <div style="font-size: 36px; font-weight: bold; color: #1d4ed8; letter-spacing: 8px;">%s</div>
        </div>
        <p><strong>This code will expire in 5 minutes.</strong></p>
        <p>If you did not request a password reset, please ignore this email.</p>
        <p style="color: #666; font-size: 12px; margin-top: 30px;">This is an automated email. Please do not reply.</p>
    </div>
</body>
</html>`, otp)

	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
