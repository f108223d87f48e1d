// internal/service/dispatch_service.go
package service

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/unclebandit/coldreach-backend/internal/gateway"
	"github.com/unclebandit/coldreach-backend/internal/model"
)

// ProgressFunc observes dispatch progress after every processed contact.
// Counters are monotonically non-decreasing and delivered in send order.
type ProgressFunc func(sentCount, failedCount int, contact model.Contact)

type DispatchOptions struct {
	DryRun         bool
	SkipHistorical bool
	OnProgress     ProgressFunc
}

type RunSummary struct {
	SentCount    int
	FailedCount  int // includes duplicate skips for summary purposes
	SkippedCount int
	Outcomes     []model.RunOutcome
}

// Dispatcher drives a paced, deduplicated batch send over one contact
// list. It processes contacts strictly sequentially in input order;
// there is no concurrent fan-out within a campaign.
type Dispatcher struct {
	Sender  gateway.Sender
	History []HistorySource
}

// Dispatch runs the send loop. Exactly one outcome is recorded per
// input contact. Per-recipient failures are counted and the loop
// continues; nothing escapes it as an unhandled fault.
func (d *Dispatcher) Dispatch(ctx context.Context, contacts []model.Contact, bodyTemplate string, cfg model.DeliveryConfig, opts DispatchOptions) RunSummary {
	summary := RunSummary{
		Outcomes: make([]model.RunOutcome, 0, len(contacts)),
	}

	// Pacing: at most one send per delay interval. The first send
	// passes immediately; each subsequent send waits out the interval.
	// Dry runs and duplicate skips never consume a token.
	interval := rate.Inf
	if cfg.DelaySeconds > 0 {
		interval = rate.Every(time.Duration(cfg.DelaySeconds) * time.Second)
	}
	limiter := rate.NewLimiter(interval, 1)

	for _, contact := range contacts {
		subject := RenderTemplate(cfg.SubjectTemplate, contact, cfg)
		body := RenderTemplate(bodyTemplate, contact, cfg)

		// Re-check the history fresh for every recipient. The
		// candidate list was built before the run started and a
		// concurrent run may have contacted this address since.
		if opts.SkipHistorical {
			sentSet := BuildSentSet(d.History, true)
			if _, dup := sentSet[strings.ToLower(contact.FounderEmail)]; dup {
				log.Printf("Skipping %s - already sent to %s (duplicate detected)\n", contact.CompanyName, contact.FounderEmail)
				summary.FailedCount++
				summary.SkippedCount++
				summary.record(contact, model.OutcomeSkippedDuplicate)
				notifyProgress(opts.OnProgress, summary.SentCount, summary.FailedCount, contact)
				continue
			}
		}

		if opts.DryRun {
			log.Printf("[DRY RUN] Would send to %s (%s), subject: %s\n", contact.FounderEmail, contact.CompanyName, subject)
			summary.record(contact, model.OutcomeDryRun)
			notifyProgress(opts.OnProgress, summary.SentCount, summary.FailedCount, contact)
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			// Context expiry surfaces as a failed send for the
			// remaining contact; the outcome invariant still holds.
			summary.FailedCount++
			summary.record(contact, model.OutcomeFailed)
			notifyProgress(opts.OnProgress, summary.SentCount, summary.FailedCount, contact)
			continue
		}

		if err := d.Sender.Send(contact.FounderEmail, subject, body); err != nil {
			log.Printf("Failed to send to %s: %v\n", contact.FounderEmail, err)
			summary.FailedCount++
			summary.record(contact, model.OutcomeFailed)
		} else {
			log.Printf("Email sent to %s (%s)\n", contact.FounderEmail, contact.CompanyName)
			summary.SentCount++
			summary.record(contact, model.OutcomeSent)
		}

		notifyProgress(opts.OnProgress, summary.SentCount, summary.FailedCount, contact)
	}

	return summary
}

func (s *RunSummary) record(contact model.Contact, status string) {
	s.Outcomes = append(s.Outcomes, model.RunOutcome{
		CompanyName: contact.CompanyName,
		Email:       contact.FounderEmail,
		Status:      status,
		Timestamp:   time.Now().Format(time.RFC3339),
	})
}

// notifyProgress invokes the observer; observer failure is non-fatal
// and never aborts dispatch.
func notifyProgress(fn ProgressFunc, sent, failed int, contact model.Contact) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Println("progress observer panicked:", r)
		}
	}()
	fn(sent, failed, contact)
}

// Completed reports whether the run ends in the completed status:
// something was sent, or nothing hard-failed. Duplicate skips count
// toward FailedCount for the summary metric but are not hard failures,
// so an all-skipped run with zero sends still completes.
func (s *RunSummary) Completed() bool {
	return s.SentCount > 0 || s.FailedCount-s.SkippedCount == 0
}
