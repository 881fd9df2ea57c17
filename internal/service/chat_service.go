package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
	"github.com/yourusername/trivia-chatbot/internal/logging"
)

// Ответы чат-бота
const (
	MsgUnknown         = "I don't have an answer for that question. Try 'trivia' to play the trivia game!"
	MsgTriviaStarted   = "Trivia game started! Here's your first question:"
	MsgNotEnoughTrivia = "Not enough trivia questions available to start the game."
	MsgNoActiveGame    = "No active trivia game. Type 'trivia' to start one."
	MsgInvalidAnswer   = "Please answer with A, B, C, or D."
	MsgCorrect         = "✅ Correct!"
	MsgIncorrect       = "❌ Incorrect!"
)

const (
	triviaKeyword = "trivia"
	timeLayout    = "15:04:05"
	dateLayout    = "2006-01-02"
)

var (
	timeQueries = []string{"what is the time?", "what's the time?", "time?"}
	dateQueries = []string{"what is the date?", "what's the date?", "date?"}
)

// ChatService разбирает свободный текст пользователя и направляет его
// в базу знаний или в викторину в зависимости от состояния игры
type ChatService struct {
	store  *KnowledgeStore
	trivia *TriviaEngine
	now    func() time.Time
}

// NewChatService создает диспетчер запросов
func NewChatService(store *KnowledgeStore, trivia *TriviaEngine) *ChatService {
	return &ChatService{
		store:  store,
		trivia: trivia,
		now:    time.Now,
	}
}

// SetClock подменяет источник времени
func (s *ChatService) SetClock(now func() time.Time) {
	s.now = now
}

// Ask обрабатывает запрос пользователя. Порядок: время и дата, ключевое слово
// "trivia", ответ на вопрос активной игры, поиск в базе знаний.
func (s *ChatService) Ask(input string) (entity.ChatResponse, error) {
	query := strings.ToLower(strings.TrimSpace(input))
	if query == "" {
		return entity.ChatResponse{}, ErrEmptyInput
	}

	switch {
	case slices.Contains(timeQueries, query):
		return entity.ChatResponse{
			Response: fmt.Sprintf("The current time is %s.", s.now().Format(timeLayout)),
			Kind:     entity.ChatTime,
		}, nil
	case slices.Contains(dateQueries, query):
		return entity.ChatResponse{
			Response: fmt.Sprintf("Today's date is %s.", s.now().Format(dateLayout)),
			Kind:     entity.ChatDate,
		}, nil
	case query == triviaKeyword:
		return s.toggleTrivia(), nil
	}

	if s.trivia.Status().Active {
		return s.answerTrivia(input), nil
	}

	answer, err := s.store.Lookup(input)
	if err != nil {
		logging.Warnf("[ChatService] No answer found for question: %s", strings.TrimSpace(input))
		return entity.ChatResponse{Response: MsgUnknown, Kind: entity.ChatUnknown}, nil
	}
	return entity.ChatResponse{Response: answer, Kind: entity.ChatAnswer}, nil
}

// EndActiveGame завершает игру, если она идет (при выходе из интерактивного режима)
func (s *ChatService) EndActiveGame() (*entity.GameSummary, bool) {
	return s.trivia.End()
}

func (s *ChatService) toggleTrivia() entity.ChatResponse {
	if summary, ended := s.trivia.End(); ended {
		return entity.ChatResponse{
			Response:     fmt.Sprintf("Trivia game ended. Final score: %d/%d", summary.Score, summary.Total),
			Kind:         entity.ChatTriviaEnd,
			TriviaResult: summary,
		}
	}

	if err := s.trivia.Start(s.trivia.DefaultSize()); err != nil {
		logging.Warnf("[ChatService] Failed to start trivia: %v", err)
		msg := MsgNotEnoughTrivia
		if !errors.Is(err, ErrNotEnoughQuestions) {
			msg = "Failed to start the trivia game."
		}
		return entity.ChatResponse{Response: msg, Kind: entity.ChatError}
	}

	next, err := s.trivia.Next()
	if err != nil || next.Kind != entity.NextQuestion {
		return entity.ChatResponse{Response: MsgNoActiveGame, Kind: entity.ChatError}
	}
	return entity.ChatResponse{
		Response: MsgTriviaStarted,
		Kind:     entity.ChatTriviaStart,
		Question: next.Question,
	}
}

func (s *ChatService) answerTrivia(input string) entity.ChatResponse {
	result := s.trivia.Answer(input)

	switch result.Kind {
	case entity.AnswerNoActiveGame:
		return entity.ChatResponse{Response: MsgNoActiveGame, Kind: entity.ChatError}
	case entity.AnswerInvalidFormat:
		return entity.ChatResponse{Response: MsgInvalidAnswer, Kind: entity.ChatTriviaInvalid}
	}

	resp := entity.ChatResponse{
		Response: MsgIncorrect,
		Kind:     entity.ChatTriviaAnswer,
		Answer:   &result,
	}
	if result.Kind == entity.AnswerCorrect {
		resp.Response = MsgCorrect
	}

	next, err := s.trivia.Next()
	if err != nil {
		// Игру завершили между ответом и переходом к следующему вопросу
		return resp
	}
	switch next.Kind {
	case entity.NextQuestion:
		resp.Question = next.Question
	case entity.NextGameEnded:
		resp.Kind = entity.ChatTriviaFinalResult
		resp.TriviaResult = next.Summary
	}
	return resp
}
