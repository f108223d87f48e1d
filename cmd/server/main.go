// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/unclebandit/coldreach-backend/internal/config"
	"github.com/unclebandit/coldreach-backend/internal/controller"
	"github.com/unclebandit/coldreach-backend/internal/db"
	"github.com/unclebandit/coldreach-backend/internal/queue"
	"github.com/unclebandit/coldreach-backend/internal/recorder"
	"github.com/unclebandit/coldreach-backend/internal/repository"
	"github.com/unclebandit/coldreach-backend/internal/runner"
	"github.com/unclebandit/coldreach-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()

	resultsDir := os.Getenv("RESULTS_DIR")
	if resultsDir == "" {
		resultsDir = "results"
	}

	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	outcomeRepo := &repository.OutcomeRepository{DB: db.DB}

	history := []service.HistorySource{
		recorder.NewResultsDirSource(resultsDir),
		outcomeRepo,
	}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		OutcomeRepo:  outcomeRepo,
		Recorder:     recorder.NewCSVRecorder(resultsDir),
		History:      history,
		Delivery:     config.LoadDeliveryConfig(),
	}

	// With AMQP_URL set, dispatch jobs go through RabbitMQ to the
	// worker process; otherwise they run on in-process workers.
	var publisher queue.Publisher
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		publisher = queue.NewAMQPPublisher(amqpURL)
	} else {
		dispatchRunner := runner.New(campaignService.RunCampaign, 4)
		publisher = &queue.LocalPublisher{Runner: dispatchRunner}
	}

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
		Publisher:       publisher,
		History:         history,
	}

	r := chi.NewRouter()

	// Campaign routes
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/{id}", campaignController.GetCampaignDetails)
	r.Post("/campaigns/{id}/preview", campaignController.PersonalizedPreview)
	r.Get("/stats", campaignController.SendStats)
	r.Get("/stats/resend", campaignController.ResendList)
	r.Get("/stats/sent", campaignController.SentList)
	r.Get("/health", campaignController.Health)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	log.Println("Server running on", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
