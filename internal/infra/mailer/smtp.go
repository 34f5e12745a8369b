package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

const mimeBoundary = "hornwatch-digest-boundary"

// SMTP sends one message per recipient via net/smtp's SendMail, the
// "smtp.SendMail-shaped" collaborator the digest dispatch needs.
type SMTP struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// NewSMTP wires an SMTP mailer from process config.
func NewSMTP(host, port, username, password, from string) *SMTP {
	return &SMTP{Host: host, Port: port, Username: username, Password: password, From: from}
}

// Send submits subject/htmlBody/textBody to each recipient individually,
// so no single message discloses the full list.
func (s *SMTP) Send(ctx context.Context, recipients []string, subject, htmlBody, textBody string) error {
	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := s.Host + ":" + s.Port

	for _, to := range recipients {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		msg := buildMIMEMessage(s.From, to, subject, htmlBody, textBody)
		if err := smtp.SendMail(addr, auth, s.From, []string{to}, msg); err != nil {
			return fmt.Errorf("SMTP.Send to %s: %w", to, err)
		}
	}
	return nil
}

func buildMIMEMessage(from, to, subject, htmlBody, textBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", mimeBoundary)

	fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(textBody)
	b.WriteString("\r\n\r\n")

	fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", mimeBoundary)
	return []byte(b.String())
}
