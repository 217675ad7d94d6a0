package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"nexora/internal/model"
	"nexora/internal/repository"
)

// Provider APIs commonly cap batch size; embedding requests are sent
// in sub-batches of this many texts.
const embeddingBatchSize = 10

var ErrEmbeddingDimMismatch = errors.New("embedding dimension mismatch")

// IndexService runs the indexing pass: select every stored document
// without an embedding, request vectors, and commit each vector back
// onto its record exactly once. Records that fail stay pending and are
// picked up again by the next pass.
type IndexService struct {
	docRepo      *repository.DocumentRepository
	embedder     Embedder
	embeddingDim int
}

func NewIndexService(docRepo *repository.DocumentRepository, embedder Embedder, embeddingDim int) *IndexService {
	return &IndexService{
		docRepo:      docRepo,
		embedder:     embedder,
		embeddingDim: embeddingDim,
	}
}

// IndexReport summarises one indexing pass.
type IndexReport struct {
	Pending   int `json:"pending"`
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// Run executes one indexing pass over the current pending snapshot.
// The pass continues past provider and storage errors; only a failed
// pending scan or a cancelled context aborts it.
func (s *IndexService) Run(ctx context.Context) (*IndexReport, error) {
	pending, err := s.docRepo.ListPending()
	if err != nil {
		return nil, err
	}

	report := &IndexReport{Pending: len(pending)}
	if len(pending) == 0 {
		return report, nil
	}

	for start := 0; start < len(pending); start += embeddingBatchSize {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		end := start + embeddingBatchSize
		if end > len(pending) {
			end = len(pending)
		}
		s.commitBatch(ctx, pending[start:end], report)
	}
	return report, nil
}

// commitBatch embeds one sub-batch and attaches the vectors. A failed
// batch call marks nothing; it falls back to per-document requests so
// one bad document cannot hold the rest of its batch in pending.
func (s *IndexService) commitBatch(ctx context.Context, batch []model.Document, report *IndexReport) {
	texts := make([]string, len(batch))
	for i := range batch {
		texts[i] = batch[i].TextContent
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		log.Printf("embed batch of %d failed, retrying per document: %v", len(batch), err)
		for i := range batch {
			s.commitOne(ctx, &batch[i], report)
		}
		return
	}

	for i := range batch {
		if err := s.attach(batch[i].ID, vectors[i]); err != nil {
			log.Printf("commit embedding for document %d failed: %v", batch[i].ID, err)
			report.Failed++
			continue
		}
		report.Processed++
	}
}

func (s *IndexService) commitOne(ctx context.Context, doc *model.Document, report *IndexReport) {
	vec, err := s.embedder.Embed(ctx, doc.TextContent)
	if err != nil {
		log.Printf("embed document %d failed: %v", doc.ID, err)
		report.Failed++
		return
	}
	if err := s.attach(doc.ID, vec); err != nil {
		log.Printf("commit embedding for document %d failed: %v", doc.ID, err)
		report.Failed++
		return
	}
	report.Processed++
}

func (s *IndexService) attach(id uint, vec []float32) error {
	if len(vec) != s.embeddingDim {
		return fmt.Errorf("%w: got %d, want %d", ErrEmbeddingDimMismatch, len(vec), s.embeddingDim)
	}
	return s.docRepo.AttachEmbedding(id, vec)
}
