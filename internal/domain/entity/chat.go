package entity

// ChatKind определяет тип ответа чат-бота
type ChatKind string

const (
	ChatAnswer            ChatKind = "answer"
	ChatUnknown           ChatKind = "unknown"
	ChatTime              ChatKind = "time"
	ChatDate              ChatKind = "date"
	ChatTriviaStart       ChatKind = "trivia_start"
	ChatTriviaEnd         ChatKind = "trivia_end"
	ChatTriviaAnswer      ChatKind = "trivia_answer"
	ChatTriviaFinalResult ChatKind = "trivia_final_result"
	ChatTriviaInvalid     ChatKind = "trivia_invalid"
	ChatError             ChatKind = "error"
)

// ChatResponse - ответ на произвольный текстовый запрос пользователя
type ChatResponse struct {
	Response     string        `json:"response"`
	Kind         ChatKind      `json:"type"`
	Answer       *AnswerResult `json:"answer_result,omitempty"`
	Question     *QuestionView `json:"trivia_question,omitempty"`
	TriviaResult *GameSummary  `json:"trivia_result,omitempty"`
}
