package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-chatbot/internal/handler/dto"
	"github.com/yourusername/trivia-chatbot/internal/service"
)

// ChatHandler обрабатывает запросы к чат-боту
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler создает обработчик чата
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Ask отвечает на вопрос пользователя
// POST /api/ask
func (h *ChatHandler) Ask(c *gin.Context) {
	var req dto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	resp, err := h.chat.Ask(req.Question)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
