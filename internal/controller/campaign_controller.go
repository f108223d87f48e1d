// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/coldreach-backend/internal/model"
	"github.com/unclebandit/coldreach-backend/internal/queue"
	"github.com/unclebandit/coldreach-backend/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
	Publisher       queue.Publisher
	History         []service.HistorySource
}

// CreateCampaign creates a campaign and, unless it carries a schedule,
// hands it straight to the dispatch queue. The HTTP call returns as
// soon as the job is queued; the dispatch itself runs in the
// background and is observed by polling GET /campaigns/{id}.
func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name            string  `json:"name"`
		ContactFile     string  `json:"contact_file"`
		TemplateContent string  `json:"template_content"`
		SubjectTemplate string  `json:"subject_template"`
		EmailLimit      int     `json:"email_limit"`
		DryRun          bool    `json:"dry_run"`
		ScheduledAt     *string `json:"scheduled_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	campaign, err := c.CampaignService.CreateCampaign(
		body.Name, body.ContactFile, body.TemplateContent,
		body.SubjectTemplate, body.EmailLimit, body.DryRun, body.ScheduledAt,
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Scheduled campaigns wait for the scheduler sweep.
	if campaign.ScheduledAt == nil {
		if err := c.Publisher.PublishCampaign(campaign.ID); err != nil {
			log.Println("failed to queue campaign:", err)
			http.Error(w, "failed to queue campaign", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":     true,
		"message":     "Campaign started",
		"campaign_id": campaign.ID,
		"status":      campaign.Status,
	})
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	campaigns, pagination, err := c.CampaignService.ListCampaigns(page, pageSize, status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":       campaigns,
		"pagination": pagination,
	})
}

func (c *CampaignController) GetCampaignDetails(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	details, err := c.CampaignService.GetCampaignDetailsWithStats(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}

// PersonalizedPreview renders the campaign template for a caller
// supplied contact without sending anything.
func (c *CampaignController) PersonalizedPreview(w http.ResponseWriter, r *http.Request) {
	campaignIDStr := chi.URLParam(r, "id")
	campaignID, _ := strconv.Atoi(campaignIDStr)

	var body struct {
		Contact          model.Contact `json:"contact"`
		OverrideTemplate *string       `json:"override_template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	subject, rendered, err := c.CampaignService.RenderPreview(campaignID, body.Contact, body.OverrideTemplate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"rendered_subject": subject,
		"rendered_message": rendered,
	})
}

// SendStats aggregates outcomes across all historical runs.
func (c *CampaignController) SendStats(w http.ResponseWriter, r *http.Request) {
	stats := service.AggregateStats(c.History)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// ResendList lists addresses that failed and were never sent since.
func (c *CampaignController) ResendList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": service.ResendList(c.History),
	})
}

// SentList lists every address successfully contacted so far.
func (c *CampaignController) SentList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": service.SentList(c.History),
	})
}

func (c *CampaignController) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
