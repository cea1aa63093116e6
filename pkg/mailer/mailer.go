// Package mailer sends notification emails over SMTP. The portal uses it
// for admin alerts (new resident registrations); delivery failures are the
// caller's to log, never fatal.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer holds the SMTP connection settings.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// New creates a Mailer. Returns nil when the host is unset, which callers
// treat as "mail disabled".
func New(host, port, username, password, from string) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{Host: host, Port: port, Username: username, Password: password, From: from}
}

// Send delivers one email. The Content-Type is inferred from the body: a
// body containing basic HTML tags is sent as text/html, anything else as
// plain text.
func (m *Mailer) Send(recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}
	if subject == "" {
		return fmt.Errorf("email subject cannot be empty")
	}
	if m.Username == "" || m.Password == "" {
		return fmt.Errorf("SMTP username and password must be provided")
	}

	contentType := "text/plain; charset=UTF-8"
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<html>") || strings.Contains(lower, "<p>") {
		contentType = "text/html; charset=UTF-8"
	}

	message := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: %s\r\n"+
		"\r\n"+
		"%s\r\n", recipient, m.From, subject, contentType, body))

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	addr := m.Host + ":" + m.Port

	if err := smtp.SendMail(addr, auth, m.From, []string{recipient}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
