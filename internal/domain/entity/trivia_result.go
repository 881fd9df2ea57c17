package entity

// AnswerKind определяет исход обработки ответа на вопрос викторины
type AnswerKind string

const (
	AnswerCorrect       AnswerKind = "correct"
	AnswerIncorrect     AnswerKind = "incorrect"
	AnswerInvalidFormat AnswerKind = "invalid"
	AnswerNoActiveGame  AnswerKind = "no_active_game"
)

// AnswerResult - результат ответа на текущий вопрос.
// CorrectAnswer, Score и Total заполняются только для AnswerCorrect и AnswerIncorrect.
type AnswerResult struct {
	Kind          AnswerKind `json:"result"`
	CorrectAnswer string     `json:"correct_answer,omitempty"`
	Score         int        `json:"score"`
	Total         int        `json:"total"`
}

// Counted сообщает, был ли ответ засчитан (ход израсходован)
func (r AnswerResult) Counted() bool {
	return r.Kind == AnswerCorrect || r.Kind == AnswerIncorrect
}

// NextKind определяет исход перехода к следующему вопросу
type NextKind string

const (
	NextQuestion  NextKind = "question"
	NextGameEnded NextKind = "game_ended"
)

// NextResult - результат перехода к следующему вопросу:
// либо очередной вопрос, либо итог игры, если очередь исчерпана.
type NextResult struct {
	Kind     NextKind      `json:"kind"`
	Question *QuestionView `json:"question,omitempty"`
	Summary  *GameSummary  `json:"summary,omitempty"`
}

// QuestionView - представление вопроса для игрока (без правильного ответа)
type QuestionView struct {
	Question string               `json:"question"`
	Options  [OptionsCount]string `json:"options"`
	Number   int                  `json:"question_number"`
	Total    int                  `json:"total_questions"`
}

// NewQuestionView создает представление вопроса с номером и общим числом вопросов в игре
func NewQuestionView(q *TriviaQuestion, number, total int) *QuestionView {
	return &QuestionView{
		Question: q.Question,
		Options:  q.Options,
		Number:   number,
		Total:    total,
	}
}

// GameSummary - итог завершенной игры
type GameSummary struct {
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Message    string  `json:"message"`
}

// Сообщения по уровням результата
const (
	TierExcellentMessage = "🌟 Excellent! You're a university services expert!"
	TierGreatMessage     = "👍 Great job! You know your way around university services!"
	TierGoodMessage      = "👌 Not bad! You have good knowledge of university services!"
	TierKeepMessage      = "📚 Keep learning about university services - there's always more to discover!"
)

// NewGameSummary рассчитывает процент правильных ответов и подбирает сообщение.
// При total == 0 процент равен 0.
func NewGameSummary(score, total int) *GameSummary {
	percentage := 0.0
	if total > 0 {
		percentage = float64(score) / float64(total) * 100
	}
	return &GameSummary{
		Score:      score,
		Total:      total,
		Percentage: percentage,
		Message:    TierMessage(percentage),
	}
}

// TierMessage возвращает сообщение для процента правильных ответов (пороги 90/70/50)
func TierMessage(percentage float64) string {
	switch {
	case percentage >= 90:
		return TierExcellentMessage
	case percentage >= 70:
		return TierGreatMessage
	case percentage >= 50:
		return TierGoodMessage
	default:
		return TierKeepMessage
	}
}

// TriviaStatus - снимок состояния текущей игры
type TriviaStatus struct {
	Active          bool   `json:"active"`
	Score           int    `json:"score"`
	Total           int    `json:"total"`
	CurrentQuestion string `json:"current_question,omitempty"`
}
