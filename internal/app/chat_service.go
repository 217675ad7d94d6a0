package app

import (
	"context"
	"strings"

	"nexora/internal/ai"
)

const answerSystemPrompt = "You are a helpful assistant. Answer the user's question based only on the provided context. If the context does not contain enough information, say so. Do not make up facts."

const generalKnowledgePrompt = "You are a helpful assistant. No stored documents matched the question, so answer from general knowledge and say that you are doing so."

// ChatService answers a question grounded in retrieved documents: it
// builds a bounded context block from the retrieval results, constrains
// the model to that context, and reports which sources were used.
type ChatService struct {
	search    *SearchService
	generator Generator
	topK      int
}

func NewChatService(search *SearchService, generator Generator, topK int) *ChatService {
	if topK <= 0 {
		topK = 3
	}
	return &ChatService{
		search:    search,
		generator: generator,
		topK:      topK,
	}
}

// AskResult is the composed answer plus its citation list. Sources is
// empty when the answer came from general knowledge.
type AskResult struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// Ask retrieves the most relevant documents and delegates generation.
// Empty retrieval is not an error: the model is asked to answer from
// general knowledge instead.
func (s *ChatService) Ask(ctx context.Context, question string) (*AskResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrQueryEmpty
	}

	retrieved, err := s.search.Retrieve(ctx, question, s.topK)
	if err != nil {
		return nil, err
	}

	if len(retrieved) == 0 {
		answer, err := s.generator.Generate(ctx, []ai.ChatMessage{
			{Role: "system", Content: generalKnowledgePrompt},
			{Role: "user", Content: question},
		})
		if err != nil {
			return nil, err
		}
		return &AskResult{Answer: strings.TrimSpace(answer)}, nil
	}

	contextBlock := buildContextBlock(retrieved)
	userContent := "<context>\n" + contextBlock + "\n</context>\n\nQuestion: " + question

	answer, err := s.generator.Generate(ctx, []ai.ChatMessage{
		{Role: "system", Content: answerSystemPrompt},
		{Role: "user", Content: userContent},
	})
	if err != nil {
		return nil, err
	}

	return &AskResult{
		Answer:  strings.TrimSpace(answer),
		Sources: collectSources(retrieved),
	}, nil
}

// buildContextBlock joins retrieved texts with blank lines, keeping
// retrieval order (most-similar first) for reproducibility.
func buildContextBlock(retrieved []ScoredDocument) string {
	parts := make([]string, 0, len(retrieved))
	for i := range retrieved {
		parts = append(parts, retrieved[i].Document.TextContent)
	}
	return strings.Join(parts, "\n\n")
}

// collectSources deduplicates source URLs, preserving first-seen order.
func collectSources(retrieved []ScoredDocument) []string {
	seen := make(map[string]bool, len(retrieved))
	var sources []string
	for i := range retrieved {
		src := retrieved[i].Document.SourceURL
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true
		sources = append(sources, src)
	}
	return sources
}
