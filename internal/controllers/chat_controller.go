package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/triagedesk/backend/internal/logger"
	"github.com/triagedesk/backend/internal/services"
)

type ChatController struct {
	chatService *services.ChatService
}

func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// Chat handles POST /api/chat.
func (cc *ChatController) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message and session ID are required"})
		return
	}

	reply, err := cc.chatService.Chat(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
			return
		}
		logger.WithError(err, "chat_controller").Error("chat failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to process chat message. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": reply})
}

// History handles GET /api/chat/:sessionId.
func (cc *ChatController) History(c *gin.Context) {
	sessionID := c.Param("sessionId")

	messages, err := cc.chatService.History(sessionID)
	if err != nil {
		logger.WithError(err, "chat_controller").Error("failed to fetch chat history")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch chat history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
