package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender delivers transactional mail. Services depend on this interface so
// tests can swap in a recorder.
type Sender interface {
	SendVerificationCode(to, code string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (m *SMTPMailer) SendVerificationCode(to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your verification code")
	msg.SetBody("text/plain", fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code))
	return m.dialer.DialAndSend(msg)
}
