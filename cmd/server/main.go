package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexora/internal/ai"
	"nexora/internal/app"
	"nexora/internal/bootstrap"
	httptransport "nexora/internal/transport/http"
)

func main() {
	ctx := context.Background()

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

	router := httptransport.NewRouter(boot, searchService, chatService)
	server := &http.Server{
		Addr:              boot.Config.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	waitForShutdown(server)
}

func waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown failed: %v", err)
	}
}
