package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"nexora/internal/model"
)

type CrawlPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewCrawlPublisher(conn *amqp.Connection, queueName string) *CrawlPublisher {
	return &CrawlPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

// Publish sends one crawl result to the durable persist queue.
func (p *CrawlPublisher) Publish(ctx context.Context, result model.CrawlResult) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal crawl result failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish crawl result failed: %w", err)
	}
	return nil
}
