package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-chatbot/internal/middleware"
	"github.com/yourusername/trivia-chatbot/internal/tabular"
)

// Handlers - набор обработчиков, из которых собирается роутер
type Handlers struct {
	Chat     *ChatHandler
	Question *QuestionHandler
	Trivia   *TriviaHandler
	WS       *WSHandler
}

// RouterOptions - параметры роутера
type RouterOptions struct {
	AllowedOrigins []string
	// RateLimit применяется к группе /api, nil - без ограничения
	RateLimit gin.HandlerFunc
}

// NewRouter регистрирует все маршруты HTTP API
func NewRouter(h Handlers, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())

	// Не доверяем прокси-заголовкам, кроме localhost
	_ = router.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	if opts.RateLimit != nil {
		api.Use(opts.RateLimit)
	}
	{
		api.POST("/ask", h.Chat.Ask)
		api.POST("/upload", h.Question.Upload)

		questions := api.Group("/question")
		{
			questions.POST("/add", h.Question.AddQuestion)
			questions.POST("/remove", h.Question.RemoveQuestion)
			questions.GET("/list", h.Question.ListQuestions)
			questions.GET("/export",
				middleware.ExtractFormatParam("format", ExportFormatKey, tabular.FormatCSV),
				h.Question.ExportQuestions)
		}

		trivia := api.Group("/trivia")
		{
			trivia.GET("/list", h.Trivia.ListTrivia)
			trivia.POST("/start", h.Trivia.StartTrivia)
			trivia.POST("/next", h.Trivia.NextTrivia)
			trivia.POST("/answer", h.Trivia.AnswerTrivia)
			trivia.POST("/end", h.Trivia.EndTrivia)
			trivia.GET("/status", h.Trivia.TriviaStatus)
			trivia.POST("/add", h.Trivia.AddTrivia)
		}
	}

	if h.WS != nil {
		router.GET("/ws/chat", h.WS.HandleConnection)
	}

	return router
}
