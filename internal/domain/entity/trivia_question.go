package entity

import (
	"fmt"
	"strings"

	apperrors "github.com/yourusername/trivia-chatbot/internal/pkg/errors"
)

// OptionsCount - количество вариантов ответа в вопросе викторины
const OptionsCount = 4

// TriviaQuestion представляет вопрос викторины с четырьмя вариантами ответа.
// После создания не изменяется.
type TriviaQuestion struct {
	Question      string               `json:"question"`
	Options       [OptionsCount]string `json:"options"`
	CorrectAnswer string               `json:"-"` // Скрыто от клиента
}

// NewTriviaQuestion создает вопрос викторины, проверяя структурные инварианты:
// все поля непустые, варианты различны, правильный ответ совпадает с одним из вариантов.
func NewTriviaQuestion(question, optionA, optionB, optionC, optionD, correctAnswer string) (*TriviaQuestion, error) {
	q := &TriviaQuestion{
		Question: strings.TrimSpace(question),
		Options: [OptionsCount]string{
			strings.TrimSpace(optionA),
			strings.TrimSpace(optionB),
			strings.TrimSpace(optionC),
			strings.TrimSpace(optionD),
		},
		CorrectAnswer: strings.TrimSpace(correctAnswer),
	}

	if q.Question == "" {
		return nil, fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
	}
	for i, opt := range q.Options {
		if opt == "" {
			return nil, fmt.Errorf("%w: option %s is required", apperrors.ErrValidation, OptionLetter(i))
		}
		for j := 0; j < i; j++ {
			if q.Options[j] == opt {
				return nil, fmt.Errorf("%w: options %s and %s are identical", apperrors.ErrValidation, OptionLetter(j), OptionLetter(i))
			}
		}
	}
	if q.CorrectAnswer == "" {
		return nil, fmt.Errorf("%w: correct answer is required", apperrors.ErrValidation)
	}
	if q.CorrectIndex() < 0 {
		return nil, fmt.Errorf("%w: correct answer must match one of the options", apperrors.ErrValidation)
	}

	return q, nil
}

// CorrectIndex возвращает индекс правильного ответа среди вариантов.
// -1, если правильный ответ не совпадает ни с одним вариантом
// (возможно только для строк, загруженных из файла без повторной валидации).
func (q *TriviaQuestion) CorrectIndex() int {
	for i, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return i
		}
	}
	return -1
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *TriviaQuestion) IsCorrect(selectedIndex int) bool {
	correct := q.CorrectIndex()
	return correct >= 0 && selectedIndex == correct
}

// OptionLetter возвращает букву варианта по индексу (0 -> "A")
func OptionLetter(index int) string {
	if index < 0 || index >= OptionsCount {
		return "?"
	}
	return string(rune('A' + index))
}

// ParseOptionLetter преобразует ответ пользователя (A-D, без учета регистра и пробелов) в индекс варианта
func ParseOptionLetter(input string) (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(input))
	if len(s) != 1 {
		return 0, false
	}
	idx := int(s[0] - 'A')
	if idx < 0 || idx >= OptionsCount {
		return 0, false
	}
	return idx, true
}
