// internal/runner/runner.go
package runner

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// RunFunc executes one campaign dispatch to completion.
type RunFunc func(ctx context.Context, campaignID int)

// Handle tracks one scheduled dispatch worker.
type Handle struct {
	CampaignID int
	done       chan struct{}
}

// Done is closed when the worker finishes.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Runner schedules campaign dispatches on background workers. The pool
// is bounded, and at most one worker may be active per campaign; a
// second start for the same campaign is rejected rather than queued.
type Runner struct {
	run RunFunc
	sem chan struct{}

	mu     sync.Mutex
	active map[int]*Handle
}

func New(run RunFunc, maxWorkers int) *Runner {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Runner{
		run:    run,
		sem:    make(chan struct{}, maxWorkers),
		active: make(map[int]*Handle),
	}
}

// Start schedules a dispatch worker for the campaign and returns
// immediately. The caller polls campaign status through the store; the
// handle only signals worker exit.
func (r *Runner) Start(campaignID int) (*Handle, error) {
	r.mu.Lock()
	if _, ok := r.active[campaignID]; ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("campaign %d already has an active dispatch", campaignID)
	}
	h := &Handle{CampaignID: campaignID, done: make(chan struct{})}
	r.active[campaignID] = h
	r.mu.Unlock()

	go func() {
		r.sem <- struct{}{}
		defer func() {
			<-r.sem
			r.mu.Lock()
			delete(r.active, campaignID)
			r.mu.Unlock()
			close(h.done)
		}()

		log.Println("dispatch worker started for campaign", campaignID)
		r.run(context.Background(), campaignID)
		log.Println("dispatch worker finished for campaign", campaignID)
	}()

	return h, nil
}

// Active reports whether the campaign currently has a dispatch worker.
func (r *Runner) Active(campaignID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[campaignID]
	return ok
}
