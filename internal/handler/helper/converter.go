package helper

import (
	"fmt"
	"strings"

	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
)

// OptionLines преобразует варианты ответа в строки вида "A) текст"
func OptionLines(options [entity.OptionsCount]string) []string {
	lines := make([]string, len(options))
	for i, opt := range options {
		if opt == "" {
			opt = "(empty option)"
		}
		lines[i] = fmt.Sprintf("%s) %s", entity.OptionLetter(i), opt)
	}
	return lines
}

// FormatQuestion возвращает текстовое представление вопроса викторины
func FormatQuestion(q *entity.QuestionView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d/%d:\n%s\n\n", q.Number, q.Total, q.Question)
	for _, line := range OptionLines(q.Options) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("\nType A, B, C, or D to answer.")
	return b.String()
}

// FormatSummary возвращает текстовое представление итога игры
func FormatSummary(s *entity.GameSummary) string {
	return fmt.Sprintf("Final Score: %d/%d (%.1f%%)\n%s", s.Score, s.Total, s.Percentage, s.Message)
}
