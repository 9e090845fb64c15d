package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/barangay-portal/api/internal/config"
	"github.com/barangay-portal/api/internal/logging"
)

// EmailService sends transactional portal mail via SendGrid. Without an API
// key configured it logs the mail it would have sent and returns nil, so
// local development works without a SendGrid account.
type EmailService struct {
	client *sendgrid.Client
	logger *logging.SafeLogger
}

// NewEmailService creates a new email service
func NewEmailService(logger *logging.SafeLogger) *EmailService {
	var client *sendgrid.Client
	if config.AppConfig.SendGridAPIKey != "" {
		client = sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	}
	return &EmailService{client: client, logger: logger}
}

// SendVerificationEmail sends the email-verification mail after registration
func (s *EmailService) SendVerificationEmail(recipient, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", config.AppConfig.PortalBaseURL, token)

	plainText := fmt.Sprintf(`Welcome to the Barangay Citizen Portal.

Please verify your email address by opening the link below:
%s

If you did not create this account, you can ignore this message.`, verifyURL)

	htmlContent := fmt.Sprintf(`<p>Welcome to the Barangay Citizen Portal.</p>
<p>Please verify your email address by clicking the link below:</p>
<p><a href="%s">Verify my email</a></p>
<p>If you did not create this account, you can ignore this message.</p>`, verifyURL)

	return s.send(recipient, "Verify your Barangay Portal account", plainText, htmlContent)
}

// SendPasswordResetEmail sends the password-reset mail with the reset link
func (s *EmailService) SendPasswordResetEmail(recipient, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", config.AppConfig.PortalBaseURL, token)

	plainText := fmt.Sprintf(`You requested a password reset for your Barangay Citizen Portal account.

Open the link below to choose a new password:
%s

This link expires in %s. If you did not request a reset, ignore this message
and your password will stay unchanged.`, resetURL, config.AppConfig.ResetTokenTTL)

	htmlContent := fmt.Sprintf(`<p>You requested a password reset for your Barangay Citizen Portal account.</p>
<p><a href="%s">Reset my password</a></p>
<p>This link expires in %s. If you did not request a reset, ignore this
message and your password will stay unchanged.</p>`, resetURL, config.AppConfig.ResetTokenTTL)

	return s.send(recipient, "Reset your Barangay Portal password", plainText, htmlContent)
}

func (s *EmailService) send(recipient, subject, plainText, htmlContent string) error {
	if s.client == nil {
		s.logger.Info("email delivery skipped, no SendGrid API key configured",
			zap.String("subject", subject))
		return nil
	}

	from := mail.NewEmail(config.AppConfig.EmailFromName, config.AppConfig.EmailFrom)
	to := mail.NewEmail(recipient, recipient)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	return nil
}
