package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"nexora/internal/bootstrap"
	"nexora/internal/cache"
	"nexora/internal/crawler"
	"nexora/internal/platform/rabbitmq"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	boot, err := bootstrap.New(ctx)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
	defer func() {
		if err := boot.Close(); err != nil {
			log.Printf("close resources failed: %v", err)
		}
	}()

	publisher := rabbitmq.NewCrawlPublisher(boot.MQConn, boot.Config.RabbitMQ.CrawlResultQueue)

	// The cross-run seen set only applies when dedup is on; the base
	// behaviour is an append-only raw layer that refetches freely.
	var seen crawler.SeenMarker
	if boot.Config.Crawler.Dedup {
		seen = cache.NewSeenCache(boot.Redis, time.Duration(boot.Config.Redis.SeenTTLSeconds)*time.Second)
	}

	c := crawler.New(boot.Config.Crawler, publisher, seen)

	log.Printf("crawl starting from %d seed(s)", len(boot.Config.Crawler.Seeds))
	report, err := c.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("crawl failed: %v", err)
	}
	log.Printf("crawl %s done: fetched=%d published=%d skipped=%d",
		report.RunID, report.Fetched, report.Published, report.Skipped)

	// Give the persist worker a moment to drain the queue before the
	// connection closes.
	time.Sleep(2 * time.Second)
}
