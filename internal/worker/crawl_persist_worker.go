package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"nexora/internal/model"
	"nexora/internal/repository"
)

// CrawlPersistWorker consumes crawl results from the queue and writes
// them into the raw document store. Each write is independent; a
// failed write nacks the delivery and corrupts nothing else.
type CrawlPersistWorker struct {
	conn      *amqp.Connection
	docRepo   *repository.DocumentRepository
	queueName string
	dedup     bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewCrawlPersistWorker(conn *amqp.Connection, docRepo *repository.DocumentRepository, queueName string, dedup bool) *CrawlPersistWorker {
	return &CrawlPersistWorker{
		conn:      conn,
		docRepo:   docRepo,
		queueName: queueName,
		dedup:     dedup,
	}
}

func (w *CrawlPersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var result model.CrawlResult
				if err := json.Unmarshal(d.Body, &result); err != nil {
					log.Printf("worker decode crawl result failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.persist(result); err != nil {
					log.Printf("worker persist crawl result failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

// persist writes one raw record. With dedup on, writes upsert by
// source URL; otherwise the raw layer is append-only.
func (w *CrawlPersistWorker) persist(result model.CrawlResult) error {
	doc := &model.Document{
		SourceURL:   result.SourceURL,
		TextContent: result.TextContent,
		ContentHash: model.HashContent(result.TextContent),
	}
	if w.dedup {
		return w.docRepo.Upsert(doc)
	}
	return w.docRepo.Create(doc)
}

func (w *CrawlPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
