package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/triagedesk/backend/internal/controllers"
	"github.com/triagedesk/backend/internal/services"
	"github.com/triagedesk/backend/internal/storage"
)

// SetupRoutes configures all application routes. The store and generator are
// injected so tests can wire fakes.
func SetupRoutes(r *gin.Engine, store storage.Store, llm services.Generator) {
	analysisService := services.NewAnalysisService(store, llm)
	chatService := services.NewChatService(store, llm)

	analysisController := controllers.NewAnalysisController(analysisService)
	chatController := controllers.NewChatController(chatService)
	ticketController := controllers.NewTicketController(store)

	api := r.Group("/api")
	{
		api.POST("/analyze", analysisController.Analyze)
		api.GET("/analyses", analysisController.ListAnalyses)

		api.POST("/chat", chatController.Chat)
		api.GET("/chat/:sessionId", chatController.History)

		api.GET("/tickets/similar", ticketController.SimilarTickets)
		api.GET("/tickets", ticketController.ListTickets)
	}
}
