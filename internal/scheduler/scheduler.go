// internal/scheduler/scheduler.go
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/unclebandit/coldreach-backend/internal/queue"
	"github.com/unclebandit/coldreach-backend/internal/repository"
)

// Scheduler sweeps for pending campaigns whose scheduled time has
// passed and hands them to the dispatch queue.
type Scheduler struct {
	CampaignRepo repository.CampaignRepositoryInterface
	Publisher    queue.Publisher

	cron *cron.Cron
}

func New(repo repository.CampaignRepositoryInterface, pub queue.Publisher) *Scheduler {
	return &Scheduler{
		CampaignRepo: repo,
		Publisher:    pub,
		cron:         cron.New(),
	}
}

// Start registers the periodic sweep and launches the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@every 1m", s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("campaign scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Sweep starts every due scheduled campaign. A campaign that fails to
// queue stays pending and is retried on the next sweep.
func (s *Scheduler) Sweep() {
	due, err := s.CampaignRepo.ListDueScheduled(time.Now())
	if err != nil {
		log.Println("scheduler: failed to list due campaigns:", err)
		return
	}

	for _, c := range due {
		if err := s.Publisher.PublishCampaign(c.ID); err != nil {
			log.Printf("scheduler: failed to start campaign %d: %v\n", c.ID, err)
			continue
		}
		log.Printf("scheduler: started scheduled campaign %d (%s)\n", c.ID, c.Name)
	}
}
