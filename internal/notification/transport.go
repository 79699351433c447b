package notification

import (
	"crypto/tls"

	"gopkg.in/gomail.v2"

	"leave-backend/internal/model"
)

// SMTPTransport builds a fresh dialer per message from the settings it is
// handed, so there is no connection state to invalidate when they change.
type SMTPTransport struct {
	insecureSkipVerify bool
}

func NewSMTPTransport(insecureSkipVerify bool) *SMTPTransport {
	return &SMTPTransport{insecureSkipVerify: insecureSkipVerify}
}

func (t *SMTPTransport) Send(settings model.MailSettings, msg Message) error {
	d := gomail.NewDialer(settings.Host, settings.Port, settings.Username, settings.Password)
	if t.insecureSkipVerify {
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	if msg.ID != "" {
		m.SetHeader("Message-ID", "<"+msg.ID+"@"+settings.Host+">")
	}
	m.SetBody("text/plain", msg.Body)

	return d.DialAndSend(m)
}
