package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-chatbot/internal/logging"
	apperrors "github.com/yourusername/trivia-chatbot/internal/pkg/errors"
	"github.com/yourusername/trivia-chatbot/internal/service"
)

// handleError преобразует ошибку сервиса в HTTP ответ
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotEnoughQuestions):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to start trivia", "details": "Not enough questions available"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidAnswerFormat),
		errors.Is(err, apperrors.ErrNoActiveGame):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPersistence):
		logging.Errorf("[Handler] Persistence failure: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save changes"})
	default:
		logging.Errorf("[Handler] Internal server error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// invalidRequest отвечает на запрос с некорректным телом
func invalidRequest(c *gin.Context, err error) {
	logging.Debugf("[Handler] Invalid request to %s: %v", c.Request.URL.Path, err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
}
