package dto

import "github.com/yourusername/trivia-chatbot/internal/domain/entity"

// StartTriviaRequest - запуск игры; 0 означает размер по умолчанию
type StartTriviaRequest struct {
	NumQuestions int `json:"num_questions" binding:"omitempty,min=1"`
}

// AnswerTriviaRequest - ответ буквой A-D
type AnswerTriviaRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// AddTriviaRequest - новый вопрос викторины
type AddTriviaRequest struct {
	Question      string `json:"question" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required"`
}

// TriviaListResponse - список вопросов каталога
type TriviaListResponse struct {
	TriviaQuestions []string `json:"trivia_questions"`
}

// StartTriviaResponse - первый вопрос новой игры
type StartTriviaResponse struct {
	Status          string               `json:"status"`
	CurrentQuestion *entity.QuestionView `json:"current_question"`
	Score           int                  `json:"score"`
	Total           int                  `json:"total"`
	GameActive      bool                 `json:"game_active"`
}

// NextTriviaResponse - следующий вопрос или итог игры
type NextTriviaResponse struct {
	Status      string               `json:"status"`
	Question    *entity.QuestionView `json:"current_question,omitempty"`
	GameOver    bool                 `json:"game_over"`
	FinalResult *entity.GameSummary  `json:"final_result,omitempty"`
}

// AnswerTriviaResponse - результат ответа и следующий вопрос (или итог игры)
type AnswerTriviaResponse struct {
	Status        string               `json:"status"`
	Result        entity.AnswerKind    `json:"result"`
	CorrectAnswer string               `json:"correct_answer"`
	Score         int                  `json:"score"`
	Total         int                  `json:"total"`
	NextQuestion  *entity.QuestionView `json:"next_question,omitempty"`
	GameOver      bool                 `json:"game_over,omitempty"`
	FinalResult   *entity.GameSummary  `json:"final_result,omitempty"`
}

// EndTriviaResponse - итог завершенной игры
type EndTriviaResponse struct {
	Status     string              `json:"status"`
	FinalScore *entity.GameSummary `json:"final_score,omitempty"`
}

// NewAnswerTriviaResponse собирает ответ из результата и перехода к следующему вопросу
func NewAnswerTriviaResponse(result entity.AnswerResult, next entity.NextResult) AnswerTriviaResponse {
	resp := AnswerTriviaResponse{
		Status:        "answered",
		Result:        result.Kind,
		CorrectAnswer: result.CorrectAnswer,
		Score:         result.Score,
		Total:         result.Total,
	}
	switch next.Kind {
	case entity.NextQuestion:
		resp.NextQuestion = next.Question
	case entity.NextGameEnded:
		resp.GameOver = true
		resp.FinalResult = next.Summary
	}
	return resp
}

// NewNextTriviaResponse преобразует NextResult
func NewNextTriviaResponse(next entity.NextResult) NextTriviaResponse {
	if next.Kind == entity.NextGameEnded {
		return NextTriviaResponse{Status: "ended", GameOver: true, FinalResult: next.Summary}
	}
	return NextTriviaResponse{Status: "question", Question: next.Question}
}
