package mailer

import (
	"fmt"

	"github.com/wneessen/go-mail"

	"hostel-feedback-backend/config"
)

// Mailer sends password-reset mail. Implementations must treat delivery
// failure as non-fatal for the caller's main flow.
type Mailer interface {
	SendPasswordReset(to, username, token string) error
}

// SMTPMailer delivers mail over SMTP with plain auth.
type SMTPMailer struct {
	cfg *config.SMTPConfig
}

// New creates an SMTPMailer from config. Returns nil when no host is
// configured, in which case reset mail is skipped.
func New(cfg *config.SMTPConfig) *SMTPMailer {
	if cfg.Host == "" {
		return nil
	}
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) client() (*mail.Client, error) {
	c, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("could not initialize smtp client: %w", err)
	}
	return c, nil
}

// SendPasswordReset mails a one-time reset token to the given address.
func (m *SMTPMailer) SendPasswordReset(to, username, token string) error {
	c, err := m.client()
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return fmt.Errorf("failed to set From address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set To address: %w", err)
	}
	msg.Subject("Hostel Feedback System password reset")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hello %s,\n\nA password reset was requested for your account. "+
			"Use the token below to set a new password. It expires in one hour.\n\n%s\n\n"+
			"If you did not request this, ignore this message.\n",
		username, token))

	return c.DialAndSend(msg)
}
