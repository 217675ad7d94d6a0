package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nexora/internal/repository"
	"nexora/internal/transport/http/response"
)

type StatsHandler struct {
	docRepo *repository.DocumentRepository
}

func NewStatsHandler(docRepo *repository.DocumentRepository) *StatsHandler {
	return &StatsHandler{docRepo: docRepo}
}

// Stats reports how much of the raw layer has been indexed.
func (h *StatsHandler) Stats(c *gin.Context) {
	total, indexed, pending, err := h.docRepo.Stats()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, err.Error())
		return
	}
	response.OK(c, gin.H{
		"total":   total,
		"indexed": indexed,
		"pending": pending,
	})
}
