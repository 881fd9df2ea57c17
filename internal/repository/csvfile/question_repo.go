package csvfile

import (
	"fmt"

	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
	"github.com/yourusername/trivia-chatbot/internal/logging"
	apperrors "github.com/yourusername/trivia-chatbot/internal/pkg/errors"
	"github.com/yourusername/trivia-chatbot/internal/tabular"
)

// QuestionHeader - заголовок файла базы вопросов
var QuestionHeader = append([]string{tabular.ColQuestion}, tabular.AnswerColumns[:]...)

// QuestionRepo реализует repository.QuestionRepository поверх CSV файла
type QuestionRepo struct {
	path string
}

// NewQuestionRepo создает репозиторий базы вопросов
func NewQuestionRepo(path string) *QuestionRepo {
	return &QuestionRepo{path: path}
}

// Path возвращает путь к файлу
func (r *QuestionRepo) Path() string {
	return r.path
}

// Load читает базу вопросов. Строки без вопроса или без единого ответа пропускаются.
// Повторяющийся вопрос перезаписывает предыдущий, сохраняя его позицию.
func (r *QuestionRepo) Load() ([]entity.QAEntry, error) {
	table, err := readTable(r.path)
	if err != nil {
		return nil, err
	}
	if len(table.Header) == 0 {
		return nil, nil // пустой файл
	}

	entries, skipped, err := tabular.ParseQAEntries(table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	if skipped.ErrorOrNil() != nil {
		logging.Debugf("[QuestionRepo] Skipped %d rows in %s: %v", len(skipped.Errors), r.path, skipped)
	}
	return entries, nil
}

// Save перезаписывает файл целиком. Записи с более чем 4 ответами усекаются до 4.
func (r *QuestionRepo) Save(entries []entity.QAEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		if e.IsTruncatedOnSave() {
			logging.Warnf("[QuestionRepo] Question %q has %d answers, only the first %d are saved to %s",
				e.Question, len(e.Answers), entity.MaxStoredAnswers, r.path)
		}
		row := make([]string, len(QuestionHeader))
		row[0] = e.Question
		copy(row[1:], e.StoredAnswers())
		rows = append(rows, row)
	}

	if err := writeAtomic(r.path, QuestionHeader, rows); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	logging.Debugf("[QuestionRepo] Saved %d questions to %s", len(entries), r.path)
	return nil
}
