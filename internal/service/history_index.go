// internal/service/history_index.go
package service

import (
	"log"
	"strings"

	"github.com/unclebandit/coldreach-backend/internal/model"
)

// HistorySource provides the outcome records of prior dispatch runs.
// Implementations exist over the results CSV directory and over the
// run_outcomes table.
type HistorySource interface {
	LoadOutcomes() ([]model.RunOutcome, error)
}

// BuildSentSet scans every outcome record the given sources can produce
// and returns the set of lower-cased addresses already contacted: any
// address with a "sent" record, plus "dry_run" records when
// includeDryRun is set. Unreadable sources are skipped so a broken
// history file never blocks dispatch. The set is rebuilt fresh on every
// call; there is no cache.
func BuildSentSet(sources []HistorySource, includeDryRun bool) map[string]struct{} {
	sent := make(map[string]struct{})

	for _, src := range sources {
		outcomes, err := src.LoadOutcomes()
		if err != nil {
			log.Println("skipping unreadable history source:", err)
			continue
		}
		for _, o := range outcomes {
			email := strings.ToLower(strings.TrimSpace(o.Email))
			if email == "" {
				continue
			}
			status := strings.ToLower(o.Status)
			if status == model.OutcomeSent || (includeDryRun && status == model.OutcomeDryRun) {
				sent[email] = struct{}{}
			}
		}
	}

	return sent
}
