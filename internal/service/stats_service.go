// internal/service/stats_service.go
package service

import (
	"strings"

	"github.com/unclebandit/coldreach-backend/internal/model"
)

// SendStats aggregates outcomes across every historical run.
type SendStats struct {
	Total           int            `json:"total"`
	Sent            int            `json:"sent"`
	Failed          int            `json:"failed"`
	DryRun          int            `json:"dry_run"`
	Skipped         int            `json:"skipped_duplicate"`
	UniqueEmails    int            `json:"unique_emails"`
	UniqueCompanies int            `json:"unique_companies"`
	SentByDate      map[string]int `json:"sent_by_date"`
}

// AggregateStats walks all history sources and tallies outcomes by
// status and by date. Unreadable sources are skipped, same as the
// history index.
func AggregateStats(sources []HistorySource) SendStats {
	stats := SendStats{SentByDate: map[string]int{}}
	emails := map[string]struct{}{}
	companies := map[string]struct{}{}

	for _, src := range sources {
		outcomes, err := src.LoadOutcomes()
		if err != nil {
			continue
		}
		for _, o := range outcomes {
			stats.Total++
			switch strings.ToLower(o.Status) {
			case model.OutcomeSent:
				stats.Sent++
				if date, _, found := strings.Cut(o.Timestamp, "T"); found {
					stats.SentByDate[date]++
				}
			case model.OutcomeFailed:
				stats.Failed++
			case model.OutcomeDryRun:
				stats.DryRun++
			case model.OutcomeSkippedDuplicate:
				stats.Skipped++
			}
			if e := strings.ToLower(strings.TrimSpace(o.Email)); e != "" {
				emails[e] = struct{}{}
			}
			if c := strings.TrimSpace(o.CompanyName); c != "" {
				companies[c] = struct{}{}
			}
		}
	}

	stats.UniqueEmails = len(emails)
	stats.UniqueCompanies = len(companies)
	return stats
}

// ResendList returns one record per address whose delivery failed and
// was never subsequently sent, deduplicated by address. These are the
// candidates for a follow-up campaign.
func ResendList(sources []HistorySource) []model.RunOutcome {
	sent := BuildSentSet(sources, false)
	seen := map[string]struct{}{}
	list := []model.RunOutcome{}

	for _, src := range sources {
		outcomes, err := src.LoadOutcomes()
		if err != nil {
			continue
		}
		for _, o := range outcomes {
			if !strings.EqualFold(o.Status, model.OutcomeFailed) {
				continue
			}
			email := strings.ToLower(strings.TrimSpace(o.Email))
			if email == "" {
				continue
			}
			if _, ok := sent[email]; ok {
				continue
			}
			if _, ok := seen[email]; ok {
				continue
			}
			seen[email] = struct{}{}
			list = append(list, o)
		}
	}
	return list
}

// SentList returns one record per address successfully contacted,
// deduplicated by address.
func SentList(sources []HistorySource) []model.RunOutcome {
	seen := map[string]struct{}{}
	list := []model.RunOutcome{}

	for _, src := range sources {
		outcomes, err := src.LoadOutcomes()
		if err != nil {
			continue
		}
		for _, o := range outcomes {
			if !strings.EqualFold(o.Status, model.OutcomeSent) {
				continue
			}
			email := strings.ToLower(strings.TrimSpace(o.Email))
			if email == "" {
				continue
			}
			if _, ok := seen[email]; ok {
				continue
			}
			seen[email] = struct{}{}
			list = append(list, o)
		}
	}
	return list
}
