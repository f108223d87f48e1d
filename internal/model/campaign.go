// internal/model/campaign.go
package model

import "time"

// Campaign statuses. Terminal statuses are sticky; a completed or failed
// campaign is never re-run under the same ID.
const (
	CampaignStatusPending   = "pending"
	CampaignStatusRunning   = "running"
	CampaignStatusCompleted = "completed"
	CampaignStatusFailed    = "failed"
)

type Campaign struct {
	ID              int        `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	ContactFile     string     `db:"contact_file" json:"contact_file"`
	TemplateContent string     `db:"template_content" json:"template_content"`
	SubjectTemplate string     `db:"subject_template" json:"subject_template"`
	EmailLimit      int        `db:"email_limit" json:"email_limit"` // 0 means no limit
	DryRun          bool       `db:"dry_run" json:"dry_run"`
	Status          string     `db:"status" json:"status"`
	TotalEmails     int        `db:"total_emails" json:"total_emails"`
	SentEmails      int        `db:"sent_emails" json:"sent_emails"`
	FailedEmails    int        `db:"failed_emails" json:"failed_emails"`
	ScheduledAt     *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	StartedAt       *time.Time `db:"started_at" json:"started_at,omitempty"`
	CompletedAt     *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}
