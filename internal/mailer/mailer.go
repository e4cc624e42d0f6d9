package mailer

import (
	"fmt"
	"net/smtp"

	"dj_store_backend/internal/config"
)

// Mailer sends account notifications to clients. Implementations must not
// retry; a failed send is reported to the caller as-is.
type Mailer interface {
	SendWelcome(to, tempPassword string) error
	SendPasswordRecovery(to, token string) error
}

type smtpMailer struct {
	cfg         config.SMTPConfig
	frontendURL string
}

// NewSMTPMailer creates a Mailer backed by a plain SMTP transport. The
// frontend URL is embedded in recovery links.
func NewSMTPMailer(cfg config.SMTPConfig, frontendURL string) Mailer {
	return &smtpMailer{cfg: cfg, frontendURL: frontendURL}
}

// SendWelcome mails the temporary password generated at registration.
func (m *smtpMailer) SendWelcome(to, tempPassword string) error {
	body := fmt.Sprintf(`<h1>Welcome to the DJ store</h1>
<p>Your account has been created. Use the temporary password below to sign in, then change it from your profile.</p>
<p><strong>%s</strong></p>
<p>If you did not create this account you can ignore this message.</p>`, tempPassword)

	return m.send(to, "Welcome - DJ store account", body)
}

// SendPasswordRecovery mails a link embedding the recovery token.
func (m *smtpMailer) SendPasswordRecovery(to, token string) error {
	body := fmt.Sprintf(`<h1>Recover your password</h1>
<p>We received a request to recover the password for your DJ store account.</p>
<p>If it was you, follow the link below to set a new password:</p>
<a href="%srecover-password/%s">Reset password</a>
<p>If you did not request this change you can ignore this message. Your account will not be modified.</p>`,
		m.frontendURL, token)

	return m.send(to, "Password recovery - DJ store account", body)
}

func (m *smtpMailer) send(to, subject, body string) error {
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", m.cfg.From) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}
