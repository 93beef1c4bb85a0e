package mailer

import (
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Sender delivers a single message. Implementations must be safe for use
// from the dispatcher goroutine.
type Sender interface {
	Send(to, subject, body string) error
}

// ===============================
// SMTP
// ===============================

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

// ===============================
// Discard (no SMTP configured)
// ===============================

type Discard struct{}

func (Discard) Send(to, subject, _ string) error {
	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Debug("mail delivery disabled, dropping message")
	return nil
}
