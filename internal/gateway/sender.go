// internal/gateway/sender.go
package gateway

import (
	appErrors "github.com/unclebandit/coldreach-backend/internal/errors"
	"github.com/unclebandit/coldreach-backend/internal/model"
)

// Sender is the capability the dispatcher needs from a delivery
// transport: send one email to one recipient. Implementations perform
// network I/O per call and keep failures isolated per recipient.
type Sender interface {
	Send(to, subject, body string) error
}

// NewSender builds the Sender variant selected by the delivery config.
// Incomplete credentials fail here, before any send is attempted.
func NewSender(cfg model.DeliveryConfig) (Sender, error) {
	switch cfg.Provider {
	case model.ProviderAPI:
		if cfg.APIKey == "" {
			return nil, appErrors.NewCredentialsMissing(cfg.Provider, "api key")
		}
		if cfg.SenderEmail == "" {
			return nil, appErrors.NewCredentialsMissing(cfg.Provider, "sender email")
		}
		return NewResendSender(cfg), nil
	case model.ProviderSMTP, "":
		if cfg.SMTPServer == "" || cfg.SMTPPort == 0 {
			return nil, appErrors.NewCredentialsMissing(model.ProviderSMTP, "server address")
		}
		if cfg.SenderEmail == "" {
			return nil, appErrors.NewCredentialsMissing(model.ProviderSMTP, "sender email")
		}
		if cfg.SMTPPassword == "" {
			return nil, appErrors.NewCredentialsMissing(model.ProviderSMTP, "password")
		}
		return NewSMTPSender(cfg), nil
	default:
		return nil, appErrors.NewCredentialsMissing(cfg.Provider, "unknown provider")
	}
}
