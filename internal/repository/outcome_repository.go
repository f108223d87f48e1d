package repository

import (
	"database/sql"

	"github.com/unclebandit/coldreach-backend/internal/model"
)

type OutcomeRepositoryInterface interface {
	InsertRun(campaignID int, runID string, outcomes []model.RunOutcome) error
	CampaignStats(campaignID int) (map[string]int, error)
	LoadOutcomes() ([]model.RunOutcome, error)
}

// OutcomeRepository stores per-recipient run outcomes. It doubles as a
// history source for the send history index: LoadOutcomes returns every
// outcome row across all campaigns.
type OutcomeRepository struct {
	DB *sql.DB
}

func (r *OutcomeRepository) InsertRun(campaignID int, runID string, outcomes []model.RunOutcome) error {
	query := `
        INSERT INTO run_outcomes (campaign_id, run_id, company_name, email, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	for _, o := range outcomes {
		if _, err := r.DB.Exec(query, campaignID, runID, o.CompanyName, o.Email, o.Status, o.Timestamp); err != nil {
			return err
		}
	}
	return nil
}

func (r *OutcomeRepository) CampaignStats(campaignID int) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM run_outcomes WHERE campaign_id=$1 GROUP BY status`
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{
		"total":             0,
		"sent":              0,
		"failed":            0,
		"dry_run":           0,
		"skipped_duplicate": 0,
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		if _, ok := stats[status]; ok {
			stats[status] = count
		}
		stats["total"] += count
	}
	return stats, rows.Err()
}

func (r *OutcomeRepository) LoadOutcomes() ([]model.RunOutcome, error) {
	query := `SELECT company_name, email, status, created_at FROM run_outcomes`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outcomes := []model.RunOutcome{}
	for rows.Next() {
		var o model.RunOutcome
		if err := rows.Scan(&o.CompanyName, &o.Email, &o.Status, &o.Timestamp); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

var _ OutcomeRepositoryInterface = (*OutcomeRepository)(nil)
