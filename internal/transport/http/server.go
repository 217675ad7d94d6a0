package http

import (
	"github.com/gin-gonic/gin"

	appsvc "nexora/internal/app"
	"nexora/internal/bootstrap"
	"nexora/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App, search *appsvc.SearchService, chat *appsvc.ChatService) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	searchHandler := handler.NewSearchHandler(search, chat)
	statsHandler := handler.NewStatsHandler(app.DocumentRepo)

	v1 := router.Group("/api/v1")
	v1.GET("/search", searchHandler.Search)
	v1.POST("/ask", searchHandler.Ask)
	v1.GET("/stats", statsHandler.Stats)

	return router
}
