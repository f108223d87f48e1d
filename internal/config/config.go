// internal/config/config.go
package config

import (
	"os"
	"strconv"

	"github.com/unclebandit/coldreach-backend/internal/model"
)

// LoadDeliveryConfig assembles the delivery config for a run from the
// environment. Defaults mirror a Gmail STARTTLS setup with a 30 second
// inter-send delay.
func LoadDeliveryConfig() model.DeliveryConfig {
	cfg := model.DeliveryConfig{
		Provider:        getEnv("DELIVERY_PROVIDER", model.ProviderSMTP),
		SMTPServer:      getEnv("SMTP_SERVER", "smtp.gmail.com"),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPUsername:    os.Getenv("SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		APIKey:          os.Getenv("RESEND_API_KEY"),
		SenderEmail:     os.Getenv("SENDER_EMAIL"),
		SenderName:      getEnv("SENDER_NAME", "Your Name"),
		DelaySeconds:    getEnvInt("DELAY_BETWEEN_EMAILS", 30),
		MaxEmailsPerDay: getEnvInt("MAX_EMAILS_PER_DAY", 50),
		SubjectTemplate: getEnv("EMAIL_SUBJECT_TEMPLATE", "Partnership Opportunity - {company_name}"),
	}
	if cfg.SMTPUsername == "" {
		cfg.SMTPUsername = cfg.SenderEmail
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
