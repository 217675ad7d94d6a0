package app

import (
	"context"

	"nexora/internal/ai"
)

// Embedder is the narrow capability the pipeline needs from the
// embedding provider. Indexing and query time must use the same
// implementation so vectors live in one space.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces a chat completion.
type Generator interface {
	Generate(ctx context.Context, messages []ai.ChatMessage) (string, error)
}
