// Package mailer sends transactional email over SMTP.
package mailer

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/izthiaka/loumaa/internal/config"
)

// Mailer represents an email sender.
type Mailer struct {
	config config.SMTPConfig
	dialer *gomail.Dialer
}

// Email represents an email message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// NewMailer creates a Mailer from the SMTP configuration.
func NewMailer(logger *zerolog.Logger, cfg config.SMTPConfig) *Mailer {
	if err := validate(cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate mailer configuration")
	}

	dialer := gomail.NewDialer(
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
	)

	return &Mailer{
		config: cfg,
		dialer: dialer,
	}
}

// Send sends a single email.
func (m *Mailer) Send(email Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		msg.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			msg.AddAlternative("text/plain", email.Body)
		}
	} else {
		msg.SetBody("text/plain", email.Body)
	}

	return m.dialer.DialAndSend(msg)
}

// SendHTML sends an HTML email.
func (m *Mailer) SendHTML(to []string, subject, htmlBody string) error {
	return m.Send(Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

// SendResetCode mails a password-reset code to the user.
func (m *Mailer) SendResetCode(to, name, code string, expiresIn time.Duration) error {
	htmlBody := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>If you made this request, enter the code below to choose a new password:</p>

		<p><strong>%s</strong></p>

		<p>This code will expire in %s for your security.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>

		<p>Thank you,</p>
		<p>Loumaa Team</p>
	`, name, code, expiresIn)

	return m.SendHTML([]string{to}, "Password Reset Code", htmlBody)
}

func validate(cfg config.SMTPConfig) error {
	if cfg.Host == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if cfg.Port == 0 {
		return fmt.Errorf("missing SMTP_PORT environment variable")
	}
	if cfg.Username == "" {
		return fmt.Errorf("missing SMTP_USERNAME environment variable")
	}
	if cfg.Password == "" {
		return fmt.Errorf("missing SMTP_PASSWORD environment variable")
	}
	if cfg.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return nil
}
