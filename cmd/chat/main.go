package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"nexora/internal/ai"
	"nexora/internal/app"
	"nexora/internal/bootstrap"
	"nexora/internal/console"
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
	searchService := app.NewSearchService(boot.DocumentRepo, client, boot.Config.LLM.TopK, boot.Config.LLM.EmbeddingDim)
	chatService := app.NewChatService(searchService, client, boot.Config.LLM.TopK)

	repl := console.New(chatService, os.Stdin, os.Stdout)
	if err := repl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("console failed: %v", err)
	}
}
