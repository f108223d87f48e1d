// internal/model/run_outcome.go
package model

// Outcome statuses recorded per send attempt.
const (
	OutcomeSent             = "sent"
	OutcomeFailed           = "failed"
	OutcomeDryRun           = "dry_run"
	OutcomeSkippedDuplicate = "skipped_duplicate"
)

// RunOutcome is the recorded result of one send attempt. Exactly one
// RunOutcome is produced per contact entering the dispatch loop.
type RunOutcome struct {
	CompanyName string `db:"company_name" json:"company"`
	Email       string `db:"email" json:"email"`
	Status      string `db:"status" json:"status"`
	Timestamp   string `db:"created_at" json:"timestamp"` // ISO-8601
}
