package tabular

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-chatbot/internal/pkg/errors"
)

// Колонки таблицы базы вопросов (формат файла и формат импорта совпадают)
const (
	ColQuestion = "question"
	ColAnswer1  = "answer1"
)

// AnswerColumns - колонки ответов в порядке записи
var AnswerColumns = [entity.MaxStoredAnswers]string{"answer1", "answer2", "answer3", "answer4"}

// formulaPrefixes - первые символы, которые Excel воспринимает как начало формулы
const formulaPrefixes = "=+-@\t\r"

// EscapeFormula экранирует ячейку апострофом, если она начинается как формула
func EscapeFormula(s string) string {
	if s != "" && strings.IndexByte(formulaPrefixes, s[0]) >= 0 {
		return "'" + s
	}
	return s
}

// UnescapeFormula снимает апостроф, добавленный EscapeFormula, чтобы экспорт
// импортировался обратно под теми же вопросами
func UnescapeFormula(s string) string {
	if len(s) > 1 && s[0] == '\'' && strings.IndexByte(formulaPrefixes, s[1]) >= 0 {
		return s[1:]
	}
	return s
}

// ParseQAEntries разбирает таблицу вопросов. Требует колонки question и answer1.
// Строки без вопроса или без единого непустого ответа пропускаются, причины
// собираются в skipped. Экранирование формул снимается. Повторяющийся вопрос перезаписывает предыдущий, сохраняя его позицию.
func ParseQAEntries(table *entity.Table) (entries []entity.QAEntry, skipped *multierror.Error, err error) {
	if !table.HasColumns(ColQuestion, ColAnswer1) {
		return nil, nil, fmt.Errorf("%w: missing required headers %q and %q (got %v)",
			apperrors.ErrValidation, ColQuestion, ColAnswer1, table.Header)
	}

	entries = make([]entity.QAEntry, 0, len(table.Rows))
	positions := make(map[string]int, len(table.Rows))

	for i, row := range table.Rows {
		lineNo := i + 2 // строка 1 - заголовок
		question := entity.NormalizeQuestion(UnescapeFormula(table.Value(row, ColQuestion)))
		if question == "" {
			skipped = multierror.Append(skipped, fmt.Errorf("row %d: empty question", lineNo))
			continue
		}

		entry := entity.QAEntry{Question: question}
		for _, col := range AnswerColumns {
			answer := strings.TrimSpace(UnescapeFormula(table.Value(row, col)))
			if answer != "" && !entry.HasAnswer(answer) {
				entry.Answers = append(entry.Answers, answer)
			}
		}
		if entry.IsEmpty() {
			skipped = multierror.Append(skipped, fmt.Errorf("row %d: no answers for %q", lineNo, question))
			continue
		}

		if pos, ok := positions[question]; ok {
			entries[pos] = entry
			continue
		}
		positions[question] = len(entries)
		entries = append(entries, entry)
	}

	return entries, skipped, nil
}
