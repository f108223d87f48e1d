// internal/service/campaign_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/unclebandit/coldreach-backend/internal/errors"
	"github.com/unclebandit/coldreach-backend/internal/gateway"
	"github.com/unclebandit/coldreach-backend/internal/model"
	"github.com/unclebandit/coldreach-backend/internal/recorder"
	"github.com/unclebandit/coldreach-backend/internal/repository"
)

// counterSyncInterval throttles progress-counter writes to the store so
// a long run does not turn into a write storm.
const counterSyncInterval = time.Second

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	OutcomeRepo  repository.OutcomeRepositoryInterface
	Recorder     recorder.Recorder
	History      []HistorySource
	Delivery     model.DeliveryConfig

	// NewSender builds the delivery gateway for a run. Defaults to
	// gateway.NewSender; injectable for tests.
	NewSender func(model.DeliveryConfig) (gateway.Sender, error)
}

type CampaignDetails struct {
	Campaign *model.Campaign `json:"campaign"`
	Stats    map[string]int  `json:"stats"`
}

func (s *CampaignService) CreateCampaign(name, contactFile, templateContent, subjectTemplate string, emailLimit int, dryRun bool, scheduledAt *string) (*model.Campaign, error) {
	if strings.TrimSpace(templateContent) == "" {
		return nil, fmt.Errorf("template cannot be empty")
	}
	if name == "" {
		name = fmt.Sprintf("Campaign - %s", time.Now().Format("2006-01-02 15:04"))
	}
	if subjectTemplate == "" {
		subjectTemplate = s.Delivery.SubjectTemplate
	}

	c := &model.Campaign{
		Name:            name,
		ContactFile:     contactFile,
		TemplateContent: templateContent,
		SubjectTemplate: subjectTemplate,
		EmailLimit:      emailLimit,
		DryRun:          dryRun,
		Status:          model.CampaignStatusPending,
	}

	if scheduledAt != nil && *scheduledAt != "" {
		t, err := time.Parse(time.RFC3339, *scheduledAt)
		if err != nil {
			return nil, err
		}
		c.ScheduledAt = &t
	}

	if err := s.CampaignRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCampaigns fetches campaigns with pagination
func (s *CampaignService) ListCampaigns(page, pageSize int, status string) ([]model.Campaign, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, status)
	if err != nil {
		return nil, nil, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return campaigns, pagination, nil
}

func (s *CampaignService) GetCampaignDetailsWithStats(campaignID int) (*CampaignDetails, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	stats, err := s.OutcomeRepo.CampaignStats(campaignID)
	if err != nil {
		log.Println("failed to load campaign stats:", err)
		stats = map[string]int{}
	}

	return &CampaignDetails{Campaign: campaign, Stats: stats}, nil
}

// RenderPreview renders the campaign template against a sample contact
// without touching the delivery gateway.
func (s *CampaignService) RenderPreview(campaignID int, contact model.Contact, overrideTemplate *string) (subject, body string, err error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return "", "", err
	}

	template := campaign.TemplateContent
	if overrideTemplate != nil && strings.TrimSpace(*overrideTemplate) != "" {
		template = *overrideTemplate
	}
	if strings.TrimSpace(template) == "" {
		return "", "", fmt.Errorf("template cannot be empty")
	}

	cfg := s.Delivery
	cfg.SubjectTemplate = campaign.SubjectTemplate

	subject = RenderTemplate(cfg.SubjectTemplate, contact, cfg)
	body = RenderTemplate(template, contact, cfg)
	return subject, body, nil
}

// RunCampaign executes a full dispatch run for the campaign. It is the
// sole writer of the campaign's counters and terminal status while the
// run is in flight. Any unexpected fault is caught at this boundary and
// converted to a failed status; the hosting process never crashes.
func (s *CampaignService) RunCampaign(ctx context.Context, campaignID int) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("campaign %d: dispatch panicked: %v\n", campaignID, r)
			if err := s.CampaignRepo.Finish(campaignID, model.CampaignStatusFailed, 0, 1); err != nil {
				log.Printf("campaign %d: failed to record failure: %v\n", campaignID, err)
			}
		}
	}()

	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		log.Printf("campaign %d: load failed: %v\n", campaignID, err)
		return
	}
	if campaign.Status != model.CampaignStatusPending {
		// Terminal statuses are sticky and a running campaign already
		// has a worker; never re-run either.
		log.Printf("campaign %d: not pending (status=%s), skipping\n", campaignID, campaign.Status)
		return
	}

	if err := s.CampaignRepo.MarkRunning(campaignID); err != nil {
		log.Printf("campaign %d: failed to mark running: %v\n", campaignID, err)
		return
	}

	contacts, err := LoadContacts(campaign.ContactFile, true)
	if err != nil {
		log.Printf("campaign %d: contact load failed: %v\n", campaignID, err)
		s.abort(campaignID, len(contacts))
		return
	}
	if campaign.EmailLimit > 0 && len(contacts) > campaign.EmailLimit {
		contacts = contacts[:campaign.EmailLimit]
	}
	if len(contacts) == 0 {
		log.Printf("campaign %d: %v\n", campaignID, appErrors.NewNoEligibleContacts(campaign.ContactFile))
		s.abort(campaignID, 0)
		return
	}

	cfg := s.Delivery
	if campaign.SubjectTemplate != "" {
		cfg.SubjectTemplate = campaign.SubjectTemplate
	}

	var sender gateway.Sender
	if !campaign.DryRun {
		newSender := s.NewSender
		if newSender == nil {
			newSender = gateway.NewSender
		}
		sender, err = newSender(cfg)
		if err != nil {
			log.Printf("campaign %d: %v\n", campaignID, err)
			s.abort(campaignID, len(contacts))
			return
		}
	}

	if err := s.CampaignRepo.UpdateCounters(campaignID, len(contacts), 0, 0); err != nil {
		log.Printf("campaign %d: failed to record total: %v\n", campaignID, err)
	}

	log.Printf("campaign %d: dispatching %d contacts (dry run: %v)\n", campaignID, len(contacts), campaign.DryRun)

	dispatcher := &Dispatcher{Sender: sender, History: s.History}

	lastSync := time.Time{}
	progress := func(sent, failed int, contact model.Contact) {
		if time.Since(lastSync) < counterSyncInterval {
			return
		}
		lastSync = time.Now()
		if err := s.CampaignRepo.UpdateCounters(campaignID, len(contacts), sent, failed); err != nil {
			log.Printf("campaign %d: counter sync failed: %v\n", campaignID, err)
		}
	}

	summary := dispatcher.Dispatch(ctx, contacts, campaign.TemplateContent, cfg, DispatchOptions{
		DryRun:         campaign.DryRun,
		SkipHistorical: true,
		OnProgress:     progress,
	})

	if s.Recorder != nil {
		if _, err := s.Recorder.Persist(summary.Outcomes); err != nil {
			log.Printf("campaign %d: failed to persist results: %v\n", campaignID, err)
		}
	}
	if s.OutcomeRepo != nil {
		runID := uuid.NewString()
		if err := s.OutcomeRepo.InsertRun(campaignID, runID, summary.Outcomes); err != nil {
			log.Printf("campaign %d: failed to store outcomes: %v\n", campaignID, err)
		}
	}

	status := model.CampaignStatusFailed
	if summary.Completed() {
		status = model.CampaignStatusCompleted
	}
	if err := s.CampaignRepo.Finish(campaignID, status, summary.SentCount, summary.FailedCount); err != nil {
		log.Printf("campaign %d: failed to finish: %v\n", campaignID, err)
	}

	log.Printf("campaign %d: %s - %d sent, %d failed (%d duplicates skipped)\n",
		campaignID, status, summary.SentCount, summary.FailedCount, summary.SkippedCount)
}

// abort ends a run that never reached the dispatch loop.
func (s *CampaignService) abort(campaignID, total int) {
	failed := total
	if failed < 1 {
		failed = 1
	}
	if err := s.CampaignRepo.Finish(campaignID, model.CampaignStatusFailed, 0, failed); err != nil {
		log.Printf("campaign %d: failed to record abort: %v\n", campaignID, err)
	}
}
