package services

import (
	"fmt"

	"github.com/yeremiapane/restaurant-reservations/utils"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a single HTML email.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer sends through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes messages to the info log instead of sending them. Used when SMTP is not
// configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, _ string) error {
	utils.InfoLogger.Printf("Mail to %s: %s", to, subject)
	return nil
}
