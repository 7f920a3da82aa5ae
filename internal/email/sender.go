package email

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"

	"course-api/pkg/config"
)

// Sender delivers account emails. Callers decide whether a delivery
// failure is fatal: registration swallows it, resend propagates it.
type Sender interface {
	SendVerificationEmail(ctx context.Context, toEmail, fullName, verificationToken string) error
}

type sender struct {
	client      *resend.Client
	fromEmail   string
	frontendUrl string
}

func NewSender(emailConfig config.EmailConfig, frontendUrl string) Sender {
	return &sender{
		client:      resend.NewClient(emailConfig.ApiKey),
		fromEmail:   emailConfig.FromEmail,
		frontendUrl: frontendUrl,
	}
}

const verificationEmailSubject = "Verify your email address"

const verificationEmailTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #4F46E5; color: white; padding: 20px; text-align: center; }
    .content { padding: 20px; background-color: #f9fafb; }
    .button { display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
    .footer { text-align: center; padding: 20px; color: #6b7280; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Verify your email</h1>
    </div>
    <div class="content">
      <p>Hello %s,</p>
      <p>Thank you for registering an account on our course platform!</p>
      <p>Please click the button below to verify your email address:</p>
      <div style="text-align: center;">
        <a href="%s" class="button">Verify Email</a>
      </div>
      <p>Or copy and paste this link into your browser:</p>
      <p style="word-break: break-all; color: #4F46E5;">%s</p>
      <p><strong>Note:</strong> unverified accounts are removed after 7 days.</p>
    </div>
    <div class="footer">
      <p>This email was sent automatically, please do not reply.</p>
      <p>&copy; %d Course Platform</p>
    </div>
  </div>
</body>
</html>`

func (s *sender) SendVerificationEmail(
	ctx context.Context,
	toEmail, fullName, verificationToken string,
) error {
	verificationUrl := fmt.Sprintf("%s/verify-email?token=%s", s.frontendUrl, verificationToken)

	greeting := fullName
	if greeting == "" {
		greeting = toEmail
	}

	htmlContent := fmt.Sprintf(
		verificationEmailTemplate,
		greeting,
		verificationUrl,
		verificationUrl,
		time.Now().UTC().Year(),
	)

	sendEmailRequest := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{toEmail},
		Subject: verificationEmailSubject,
		Html:    htmlContent,
	}

	_, err := s.client.Emails.SendWithContext(ctx, sendEmailRequest)
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}
