package providers

import (
	"fmt"
	"net/smtp"
	"strings"
)

const mimeBoundary = "sdkwatch-report"

// SMTPSender delivers reports via SMTP
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers a multipart/alternative message with plain and HTML parts.
func (s *SMTPSender) Send(to, subject, htmlBody, plainBody string) error {
	msg := buildMIME(s.from, to, subject, htmlBody, plainBody)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}
	return nil
}

func buildMIME(from, to, subject, htmlBody, plainBody string) string {
	var msg strings.Builder

	header := func(k, v string) {
		msg.WriteString(k + ": " + v + "\r\n")
	}
	header("From", from)
	header("To", to)
	header("Subject", subject)
	header("MIME-Version", "1.0")
	header("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mimeBoundary))
	msg.WriteString("\r\n")

	part := func(contentType, body string) {
		msg.WriteString("--" + mimeBoundary + "\r\n")
		msg.WriteString("Content-Type: " + contentType + "; charset=\"utf-8\"\r\n\r\n")
		msg.WriteString(body)
		msg.WriteString("\r\n")
	}
	part("text/plain", plainBody)
	part("text/html", htmlBody)

	msg.WriteString("--" + mimeBoundary + "--\r\n")
	return msg.String()
}
