// Package notify is the out-of-band delivery collaborator: it mails a copy of
// feed notifications to the affected users. Delivery is strictly best effort.
package notify

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"horasextras/config"
)

type Mailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

// NewMailer builds a mailer from the SMTP config. With an empty host the
// mailer stays usable but every Send is a no-op.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	m := &Mailer{cfg: cfg}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return m
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.dialer != nil
}

// Send mails a plain-text notification. Errors are logged, never returned:
// a broken SMTP relay must not interrupt the request lifecycle.
func (m *Mailer) Send(to, subject, body string) {
	if !m.Enabled() {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.WithError(err).WithField("to", to).Warn("notification email not delivered")
	}
}
