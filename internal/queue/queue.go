package queue

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"

	"github.com/unclebandit/coldreach-backend/internal/runner"
)

// DispatchQueue is the queue campaign-start jobs travel on.
const DispatchQueue = "campaign_dispatch"

// DispatchJob is the wire payload for one campaign-start job.
type DispatchJob struct {
	CampaignID int `json:"campaign_id"`
}

// Publisher hands a campaign off for background dispatch.
type Publisher interface {
	PublishCampaign(campaignID int) error
}

// AMQPPublisher publishes dispatch jobs to RabbitMQ for out-of-process
// workers. A connection is opened per publish; campaign starts are rare
// enough that pooling is not worth the failure modes.
type AMQPPublisher struct {
	URL string
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{URL: url}
}

func (p *AMQPPublisher) PublishCampaign(campaignID int) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to queue: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open queue channel: %w", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		DispatchQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(DispatchJob{CampaignID: campaignID})
	if err != nil {
		return err
	}

	err = ch.Publish(
		"",
		q.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish dispatch job: %w", err)
	}

	log.Println("queued dispatch job for campaign", campaignID)
	return nil
}

// LocalPublisher starts the dispatch on an in-process worker instead of
// going through the broker. Used when server and worker run as one
// process.
type LocalPublisher struct {
	Runner *runner.Runner
}

func (p *LocalPublisher) PublishCampaign(campaignID int) error {
	_, err := p.Runner.Start(campaignID)
	return err
}

var (
	_ Publisher = (*AMQPPublisher)(nil)
	_ Publisher = (*LocalPublisher)(nil)
)
