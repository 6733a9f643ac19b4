package infra

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"

	"cafemanagement/internal/config"
)

// sendTimeout bounds every SMTP delivery. Failures surface as errors instead
// of unbounded hangs.
const sendTimeout = 10 * time.Second

// Mailer wraps SMTP configuration for outbound mail (password resets,
// meeting invitations).
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Send delivers a plain-text email within the bounded-wait contract.
func (m *Mailer) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)

	done := make(chan error, 1)
	go func() { done <- e.Send(m.addr, auth) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mailer: send to %s: %w", to, err)
		}
		return nil
	case <-time.After(sendTimeout):
		return fmt.Errorf("mailer: send to %s timed out after %s", to, sendTimeout)
	}
}
