package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nexora/internal/ai"
	"nexora/internal/model"
	"nexora/internal/repository"
)

func newTestRepo(t *testing.T) *repository.DocumentRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Document{}))
	return repository.NewDocumentRepository(db)
}

var errProviderDown = errors.New("embedding provider unavailable")

// fakeEmbedder returns deterministic vectors and counts provider
// calls. Texts listed in fail error out both in batch and single mode;
// a failing text fails the whole batch, like a real provider rejecting
// the request.
type fakeEmbedder struct {
	dim        int
	vectors    map[string][]float32
	fail       map[string]bool
	embedCalls map[string]int
	batchCalls int
}

func newFakeEmbedder(dim int) *fakeEmbedder {
	return &fakeEmbedder{
		dim:        dim,
		vectors:    make(map[string][]float32),
		fail:       make(map[string]bool),
		embedCalls: make(map[string]int),
	}
}

func (f *fakeEmbedder) vectorFor(text string) []float32 {
	if v, ok := f.vectors[text]; ok {
		return v
	}
	v := make([]float32, f.dim)
	for i := range v {
		v[i] = 1
	}
	return v
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.embedCalls[text]++
	if f.fail[text] {
		return nil, errProviderDown
	}
	return f.vectorFor(text), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	for _, text := range texts {
		f.embedCalls[text]++
	}
	for _, text := range texts {
		if f.fail[text] {
			return nil, errProviderDown
		}
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = f.vectorFor(text)
	}
	return out, nil
}

func (f *fakeEmbedder) totalCalls() int {
	total := 0
	for _, n := range f.embedCalls {
		total += n
	}
	return total
}

// fakeGenerator records the last prompt and returns a canned answer.
type fakeGenerator struct {
	lastMessages []ai.ChatMessage
	answer       string
	err          error
}

func (f *fakeGenerator) Generate(_ context.Context, messages []ai.ChatMessage) (string, error) {
	f.lastMessages = append([]ai.ChatMessage(nil), messages...)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}
