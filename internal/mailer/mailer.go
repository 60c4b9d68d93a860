package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends outbound notification emails. Callers treat sends as
// fire-and-forget; a failed send never rolls back the operation that
// triggered it.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(host string, port int, user, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("Send: %w", err)
	}
	return nil
}
