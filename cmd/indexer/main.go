package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"nexora/internal/ai"
	"nexora/internal/app"
	"nexora/internal/bootstrap"
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

	client := ai.NewClient(boot.Config.LLM)
	indexService := app.NewIndexService(boot.DocumentRepo, client, boot.Config.LLM.EmbeddingDim)

	report, err := indexService.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("indexing pass failed: %v", err)
	}

	if report.Pending == 0 {
		log.Println("nothing new to index")
		return
	}
	log.Printf("processed %d of %d pending documents (%d failed)",
		report.Processed, report.Pending, report.Failed)
}
