// internal/model/delivery_config.go
package model

// Delivery providers.
const (
	ProviderSMTP = "smtp"
	ProviderAPI  = "api"
)

// DeliveryConfig carries the sender identity and pacing policy for one
// dispatch run. Assembled once per campaign; immutable for the duration
// of the run.
type DeliveryConfig struct {
	Provider string `json:"provider"` // smtp or api

	// SMTP fields
	SMTPServer   string `json:"smtp_server"`
	SMTPPort     int    `json:"smtp_port"`
	SMTPUsername string `json:"smtp_username"`
	SMTPPassword string `json:"-"`

	// API fields
	APIKey string `json:"-"`

	SenderEmail     string `json:"sender_email"`
	SenderName      string `json:"sender_name"`
	DelaySeconds    int    `json:"delay_seconds"`
	MaxEmailsPerDay int    `json:"max_emails_per_day"` // advisory, not enforced mid-run
	SubjectTemplate string `json:"subject_template"`
}
