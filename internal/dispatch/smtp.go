package dispatch

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender delivers a single rendered email.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender delivers mail through an SMTP relay using gomail.
type SMTPSender struct {
	host     string
	from     string
	user     string
	password string
	port     int
}

// NewSMTPSender builds a sender for the given relay. from is the
// envelope and header sender address.
func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
	}
}

// Send dials the relay and delivers one message.
func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.user, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
