package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"nexora/internal/model"
	"nexora/internal/repository"
)

var ErrQueryEmpty = errors.New("query is empty")

// SearchService retrieves the stored documents most similar to a
// query. Ranking is cosine similarity over the stored vectors,
// most-similar first.
type SearchService struct {
	docRepo      *repository.DocumentRepository
	embedder     Embedder
	defaultTopK  int
	embeddingDim int
}

func NewSearchService(docRepo *repository.DocumentRepository, embedder Embedder, defaultTopK, embeddingDim int) *SearchService {
	if defaultTopK <= 0 {
		defaultTopK = 3
	}
	return &SearchService{
		docRepo:      docRepo,
		embedder:     embedder,
		defaultTopK:  defaultTopK,
		embeddingDim: embeddingDim,
	}
}

// ScoredDocument pairs a retrieved document with its similarity score.
type ScoredDocument struct {
	Document model.Document `json:"document"`
	Score    float32        `json:"score"`
}

// Retrieve returns up to k documents ordered by descending similarity.
// k <= 0 falls back to the configured default. An empty result is a
// valid state, not an error.
func (s *SearchService) Retrieve(ctx context.Context, query string, k int) ([]ScoredDocument, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrQueryEmpty
	}
	if k <= 0 {
		k = s.defaultTopK
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query failed: %w", err)
	}
	if len(queryVec) != s.embeddingDim {
		// Wrong model or index configuration; recovery is not possible
		// at runtime.
		return nil, fmt.Errorf("%w: query vector has %d dimensions, index expects %d",
			ErrEmbeddingDimMismatch, len(queryVec), s.embeddingDim)
	}

	docs, err := s.docRepo.ListIndexed()
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredDocument, 0, len(docs))
	for i := range docs {
		vec := docs[i].EmbeddingVector()
		if len(vec) != len(queryVec) {
			continue
		}
		scored = append(scored, ScoredDocument{
			Document: docs[i],
			Score:    cosineSimilarity(queryVec, vec),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if k < len(scored) {
		scored = scored[:k]
	}
	return scored, nil
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
