// internal/service/template_service.go
package service

import (
	"strings"

	"github.com/unclebandit/coldreach-backend/internal/model"
)

// RenderTemplate substitutes the fixed placeholder vocabulary with
// values from the contact and delivery config. Substitution is plain
// literal replacement; unresolved placeholders are left verbatim. The
// same function renders subjects and bodies.
func RenderTemplate(template string, contact model.Contact, cfg model.DeliveryConfig) string {
	founderName := contact.FounderName
	if founderName == "" {
		founderName = contact.CompanyName
	}
	if founderName == "" {
		founderName = "there"
	}

	industry := contact.Industry
	if industry == "" {
		industry = defaultIndustry
	}

	result := template
	result = strings.ReplaceAll(result, "{company_name}", contact.CompanyName)
	result = strings.ReplaceAll(result, "{founder_name}", founderName)
	result = strings.ReplaceAll(result, "{founder_email}", contact.FounderEmail)
	result = strings.ReplaceAll(result, "{website}", contact.Website)
	result = strings.ReplaceAll(result, "{industry}", industry)
	result = strings.ReplaceAll(result, "{sender_name}", cfg.SenderName)
	return result
}
