package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
	"github.com/yourusername/trivia-chatbot/internal/handler/dto"
	"github.com/yourusername/trivia-chatbot/internal/logging"
	"github.com/yourusername/trivia-chatbot/internal/service"
)

// TriviaHandler обрабатывает запросы викторины
type TriviaHandler struct {
	engine *service.TriviaEngine
}

// NewTriviaHandler создает обработчик викторины
func NewTriviaHandler(engine *service.TriviaEngine) *TriviaHandler {
	return &TriviaHandler{engine: engine}
}

// ListTrivia возвращает тексты вопросов каталога
// GET /api/trivia/list
func (h *TriviaHandler) ListTrivia(c *gin.Context) {
	c.JSON(http.StatusOK, dto.TriviaListResponse{TriviaQuestions: h.engine.List()})
}

// StartTrivia начинает игру и возвращает первый вопрос.
// Тело запроса необязательно.
// POST /api/trivia/start
func (h *TriviaHandler) StartTrivia(c *gin.Context) {
	var req dto.StartTriviaRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			invalidRequest(c, err)
			return
		}
	}

	size := h.engine.ClampSize(req.NumQuestions)
	if err := h.engine.Start(size); err != nil {
		handleError(c, err)
		return
	}

	next, err := h.engine.Next()
	if err != nil {
		handleError(c, err)
		return
	}
	if next.Kind != entity.NextQuestion {
		c.JSON(http.StatusOK, dto.NewNextTriviaResponse(next))
		return
	}

	logging.Infof("[TriviaHandler] Trivia started via API with %d questions", size)
	c.JSON(http.StatusOK, dto.StartTriviaResponse{
		Status:          "started",
		CurrentQuestion: next.Question,
		Score:           0,
		Total:           size,
		GameActive:      true,
	})
}

// NextTrivia возвращает текущий или следующий вопрос
// POST /api/trivia/next
func (h *TriviaHandler) NextTrivia(c *gin.Context) {
	next, err := h.engine.Next()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewNextTriviaResponse(next))
}

// AnswerTrivia принимает ответ буквой A-D и переходит к следующему вопросу
// POST /api/trivia/answer
func (h *TriviaHandler) AnswerTrivia(c *gin.Context) {
	var req dto.AnswerTriviaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	result := h.engine.Answer(req.Answer)
	switch result.Kind {
	case entity.AnswerNoActiveGame:
		c.JSON(http.StatusBadRequest, gin.H{"error": "No active trivia game"})
		return
	case entity.AnswerInvalidFormat:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer format. Please use A, B, C, or D."})
		return
	}

	next, err := h.engine.Next()
	if err != nil {
		// Игру завершили параллельным запросом, результат ответа все равно отдаем
		c.JSON(http.StatusOK, dto.NewAnswerTriviaResponse(result, entity.NextResult{}))
		return
	}
	c.JSON(http.StatusOK, dto.NewAnswerTriviaResponse(result, next))
}

// EndTrivia завершает игру и возвращает итог
// POST /api/trivia/end
func (h *TriviaHandler) EndTrivia(c *gin.Context) {
	summary, ended := h.engine.End()
	if !ended {
		c.JSON(http.StatusOK, dto.EndTriviaResponse{Status: "no_active_game"})
		return
	}
	c.JSON(http.StatusOK, dto.EndTriviaResponse{Status: "ended", FinalScore: summary})
}

// TriviaStatus возвращает состояние текущей игры
// GET /api/trivia/status
func (h *TriviaHandler) TriviaStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Status())
}

// AddTrivia добавляет вопрос в каталог
// POST /api/trivia/add
func (h *TriviaHandler) AddTrivia(c *gin.Context) {
	var req dto.AddTriviaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	err := h.engine.AddQuestion(req.Question, req.OptionA, req.OptionB, req.OptionC, req.OptionD, req.CorrectAnswer)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStatusResponse("Trivia question added successfully"))
}
