package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nexora/internal/app"
	"nexora/internal/transport/http/response"
)

type SearchHandler struct {
	search *app.SearchService
	chat   *app.ChatService
}

func NewSearchHandler(search *app.SearchService, chat *app.ChatService) *SearchHandler {
	return &SearchHandler{
		search: search,
		chat:   chat,
	}
}

type searchResultItem struct {
	ID        uint    `json:"id"`
	SourceURL string  `json:"source_url"`
	Text      string  `json:"text"`
	Score     float32 `json:"score"`
}

// Search returns the k most similar documents for ?q=. An empty result
// list is a valid response, not an error.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	k, _ := strconv.Atoi(c.DefaultQuery("k", "0"))

	retrieved, err := h.search.Retrieve(c.Request.Context(), query, k)
	if err != nil {
		if errors.Is(err, app.ErrQueryEmpty) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "query parameter q is required")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, err.Error())
		return
	}

	items := make([]searchResultItem, 0, len(retrieved))
	for _, r := range retrieved {
		items = append(items, searchResultItem{
			ID:        r.Document.ID,
			SourceURL: r.Document.SourceURL,
			Text:      r.Document.TextContent,
			Score:     r.Score,
		})
	}
	response.OK(c, gin.H{"results": items})
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask runs the full retrieval-augmented answer flow.
func (h *SearchHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "question is required")
		return
	}

	result, err := h.chat.Ask(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, app.ErrQueryEmpty) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "question is empty")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, err.Error())
		return
	}
	response.OK(c, result)
}
