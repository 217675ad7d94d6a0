package console

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nexora/internal/ai"
	"nexora/internal/app"
	"nexora/internal/model"
	"nexora/internal/repository"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(context.Context, string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

type stubGenerator struct {
	answer string
}

func (g stubGenerator) Generate(context.Context, []ai.ChatMessage) (string, error) {
	return g.answer, nil
}

func newTestConsole(t *testing.T, answer string, withDoc bool) func(input string) string {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Document{}))
	repo := repository.NewDocumentRepository(db)

	if withDoc {
		doc := &model.Document{SourceURL: "http://a", TextContent: "hello world"}
		require.NoError(t, repo.Create(doc))
		require.NoError(t, repo.AttachEmbedding(doc.ID, []float32{1, 0}))
	}

	search := app.NewSearchService(repo, stubEmbedder{}, 3, 2)
	chat := app.NewChatService(search, stubGenerator{answer: answer}, 3)

	return func(input string) string {
		var out strings.Builder
		c := New(chat, strings.NewReader(input), &out)
		require.NoError(t, c.Run(context.Background()))
		return out.String()
	}
}

func TestExitCommandsEndTheSession(t *testing.T) {
	run := newTestConsole(t, "unused", false)

	for _, cmd := range []string{"exit", "quit", "EXIT"} {
		out := run(cmd + "\n")
		assert.Contains(t, out, "Goodbye!")
	}
}

func TestBlankInputReprompts(t *testing.T) {
	run := newTestConsole(t, "unused", false)

	out := run("\n   \nexit\n")
	assert.Equal(t, 1, strings.Count(out, "Goodbye!"))
	assert.NotContains(t, out, "Error:")
}

func TestQueryPrintsAnswerAndSources(t *testing.T) {
	run := newTestConsole(t, "a grounded answer", true)

	out := run("what is this about?\nexit\n")
	assert.Contains(t, out, "Nexora: a grounded answer")
	assert.Contains(t, out, "[Sources: http://a]")
}

func TestEmptyIndexCitesGeneralKnowledge(t *testing.T) {
	run := newTestConsole(t, "a guess", false)

	out := run("what is this about?\nexit\n")
	assert.Contains(t, out, "Nexora: a guess")
	assert.Contains(t, out, "[Source: General Knowledge]")
}

func TestEOFEndsSessionCleanly(t *testing.T) {
	run := newTestConsole(t, "unused", false)
	out := run("")
	assert.Contains(t, out, "Welcome to Nexora")
}
