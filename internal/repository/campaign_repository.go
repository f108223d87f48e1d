package repository

import (
	"database/sql"
	"fmt"
	"time"

	appErrors "github.com/unclebandit/coldreach-backend/internal/errors"
	"github.com/unclebandit/coldreach-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(c *model.Campaign) error
	GetByID(id int) (*model.Campaign, error)
	ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error)
	UpdateStatus(campaignID int, status string) error
	MarkRunning(campaignID int) error
	UpdateCounters(campaignID, total, sent, failed int) error
	Finish(campaignID int, status string, sent, failed int) error
	ListDueScheduled(now time.Time) ([]*model.Campaign, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = model.CampaignStatusPending
	}
	query := `
        INSERT INTO campaigns (name, contact_file, template_content, subject_template, email_limit, dry_run, status, scheduled_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		c.Name, c.ContactFile, c.TemplateContent, c.SubjectTemplate,
		c.EmailLimit, c.DryRun, c.Status, c.ScheduledAt, c.CreatedAt,
	).Scan(&c.ID)
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	query := `
        SELECT id, name, contact_file, template_content, subject_template, email_limit, dry_run,
               status, total_emails, sent_emails, failed_emails, scheduled_at, created_at, started_at, completed_at
        FROM campaigns WHERE id=$1
    `
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.Name, &c.ContactFile, &c.TemplateContent, &c.SubjectTemplate,
		&c.EmailLimit, &c.DryRun, &c.Status, &c.TotalEmails, &c.SentEmails,
		&c.FailedEmails, &c.ScheduledAt, &c.CreatedAt, &c.StartedAt, &c.CompletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	campaigns := []*model.Campaign{}
	query := `
        SELECT id, name, contact_file, template_content, subject_template, email_limit, dry_run,
               status, total_emails, sent_emails, failed_emails, scheduled_at, created_at, started_at, completed_at
        FROM campaigns WHERE 1=1
    `
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.Name, &c.ContactFile, &c.TemplateContent, &c.SubjectTemplate,
			&c.EmailLimit, &c.DryRun, &c.Status, &c.TotalEmails, &c.SentEmails,
			&c.FailedEmails, &c.ScheduledAt, &c.CreatedAt, &c.StartedAt, &c.CompletedAt,
		); err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}

	countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
	argsCount := []interface{}{}
	if status != "" {
		countQuery += " AND status=$1"
		argsCount = append(argsCount, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

func (r *CampaignRepository) UpdateStatus(campaignID int, status string) error {
	query := `UPDATE campaigns SET status=$1 WHERE id=$2`
	_, err := r.DB.Exec(query, status, campaignID)
	return err
}

func (r *CampaignRepository) MarkRunning(campaignID int) error {
	query := `UPDATE campaigns SET status=$1, started_at=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, model.CampaignStatusRunning, time.Now(), campaignID)
	return err
}

// UpdateCounters publishes the dispatch worker's locally owned counters
// to the store. The worker is the only writer for its campaign.
func (r *CampaignRepository) UpdateCounters(campaignID, total, sent, failed int) error {
	query := `UPDATE campaigns SET total_emails=$1, sent_emails=$2, failed_emails=$3 WHERE id=$4`
	_, err := r.DB.Exec(query, total, sent, failed, campaignID)
	return err
}

func (r *CampaignRepository) Finish(campaignID int, status string, sent, failed int) error {
	query := `UPDATE campaigns SET status=$1, sent_emails=$2, failed_emails=$3, completed_at=$4 WHERE id=$5`
	_, err := r.DB.Exec(query, status, sent, failed, time.Now(), campaignID)
	return err
}

// ListDueScheduled returns pending campaigns whose scheduled time has
// passed. Used by the scheduler sweep.
func (r *CampaignRepository) ListDueScheduled(now time.Time) ([]*model.Campaign, error) {
	query := `
        SELECT id, name, contact_file, template_content, subject_template, email_limit, dry_run,
               status, total_emails, sent_emails, failed_emails, scheduled_at, created_at, started_at, completed_at
        FROM campaigns
        WHERE status=$1 AND scheduled_at IS NOT NULL AND scheduled_at <= $2
        ORDER BY scheduled_at
    `
	rows, err := r.DB.Query(query, model.CampaignStatusPending, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.Name, &c.ContactFile, &c.TemplateContent, &c.SubjectTemplate,
			&c.EmailLimit, &c.DryRun, &c.Status, &c.TotalEmails, &c.SentEmails,
			&c.FailedEmails, &c.ScheduledAt, &c.CreatedAt, &c.StartedAt, &c.CompletedAt,
		); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
