// internal/gateway/smtp_sender.go
package gateway

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/unclebandit/coldreach-backend/internal/model"
)

// SMTPSender delivers mail over SMTP with STARTTLS. A new authenticated
// session is opened and closed per send so a connection-level failure
// only affects the current recipient.
type SMTPSender struct {
	Server   string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

func NewSMTPSender(cfg model.DeliveryConfig) *SMTPSender {
	return &SMTPSender{
		Server:   cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SenderEmail,
		FromName: cfg.SenderName,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.Server, s.Port)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("smtp connect to %s: %w", addr, err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		// The TLS client needs the hostname to verify the server
		// certificate and to offer SNI.
		if err := client.StartTLS(&tls.Config{ServerName: s.Server}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Server)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp authentication failed: %w", err)
	}

	if err := client.Mail(s.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to %s: %w", to, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(s.buildMessage(to, subject, body))); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return client.Quit()
}

func (s *SMTPSender) buildMessage(to, subject, body string) string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.FromName, s.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return msg.String()
}
