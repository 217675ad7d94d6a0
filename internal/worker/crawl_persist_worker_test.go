package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

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

func TestPersistAppendOnly(t *testing.T) {
	repo := newTestRepo(t)
	w := NewCrawlPersistWorker(nil, repo, "test-queue", false)

	result := model.CrawlResult{SourceURL: "http://a", TextContent: "hello world"}
	require.NoError(t, w.persist(result))
	require.NoError(t, w.persist(result))

	total, _, pending, err := repo.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 2, total, "append-only mode duplicates freely")
	assert.EqualValues(t, 2, pending)
}

func TestPersistDedupUpserts(t *testing.T) {
	repo := newTestRepo(t)
	w := NewCrawlPersistWorker(nil, repo, "test-queue", true)

	require.NoError(t, w.persist(model.CrawlResult{SourceURL: "http://a", TextContent: "first version"}))
	require.NoError(t, w.persist(model.CrawlResult{SourceURL: "http://a", TextContent: "second version"}))

	total, _, _, err := repo.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	docs, err := repo.ListPending()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "second version", docs[0].TextContent)
	assert.Equal(t, model.HashContent("second version"), docs[0].ContentHash)
}

func TestPersistStoresContentHash(t *testing.T) {
	repo := newTestRepo(t)
	w := NewCrawlPersistWorker(nil, repo, "test-queue", false)

	require.NoError(t, w.persist(model.CrawlResult{SourceURL: "http://a", TextContent: "payload"}))

	docs, err := repo.ListPending()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, model.HashContent("payload"), docs[0].ContentHash)
}
