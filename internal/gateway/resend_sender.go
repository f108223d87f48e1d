// internal/gateway/resend_sender.go
package gateway

import (
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/unclebandit/coldreach-backend/internal/model"
)

// ResendSender delivers mail through the Resend transactional API over
// HTTPS. Any non-2xx response surfaces as an error from the client and
// is treated as a failed delivery.
type ResendSender struct {
	client   *resend.Client
	from     string
	fromName string
}

func NewResendSender(cfg model.DeliveryConfig) *ResendSender {
	return &ResendSender{
		client:   resend.NewClient(cfg.APIKey),
		from:     cfg.SenderEmail,
		fromName: cfg.SenderName,
	}
}

func (s *ResendSender) Send(to, subject, body string) error {
	from := s.from
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.from)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	if _, err := s.client.Emails.Send(req); err != nil {
		return fmt.Errorf("resend send to %s: %w", to, err)
	}
	return nil
}
