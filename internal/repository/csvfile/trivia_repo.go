package csvfile

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
	"github.com/yourusername/trivia-chatbot/internal/logging"
	apperrors "github.com/yourusername/trivia-chatbot/internal/pkg/errors"
)

// TriviaHeader - заголовок файла каталога викторины
var TriviaHeader = []string{"question", "option_a", "option_b", "option_c", "option_d", "correct_answer"}

var optionColumns = [entity.OptionsCount]string{"option_a", "option_b", "option_c", "option_d"}

// TriviaRepo реализует repository.TriviaRepository поверх CSV файла
type TriviaRepo struct {
	path string
}

// NewTriviaRepo создает репозиторий каталога викторины
func NewTriviaRepo(path string) *TriviaRepo {
	return &TriviaRepo{path: path}
}

// Path возвращает путь к файлу
func (r *TriviaRepo) Path() string {
	return r.path
}

// Load читает каталог. Пустой файл, как и отсутствующий, дает apperrors.ErrNotFound. Требуются все шесть колонок; строка принимается, только если
// все поля непустые. Соответствие правильного ответа вариантам здесь не проверяется.
func (r *TriviaRepo) Load() ([]entity.TriviaQuestion, error) {
	table, err := readTable(r.path)
	if err != nil {
		return nil, err
	}
	if len(table.Header) == 0 {
		// Пустой файл равносилен отсутствующему
		return nil, fmt.Errorf("%w: %s is empty", apperrors.ErrNotFound, r.path)
	}

	if !table.HasColumns(TriviaHeader...) {
		return nil, fmt.Errorf("%w: invalid trivia header in %s: %v", apperrors.ErrValidation, r.path, table.Header)
	}

	var skipped *multierror.Error
	questions := make([]entity.TriviaQuestion, 0, len(table.Rows))
	for i, row := range table.Rows {
		q := entity.TriviaQuestion{
			Question:      table.Value(row, "question"),
			CorrectAnswer: table.Value(row, "correct_answer"),
		}
		complete := q.Question != "" && q.CorrectAnswer != ""
		for j, col := range optionColumns {
			q.Options[j] = table.Value(row, col)
			complete = complete && q.Options[j] != ""
		}
		if !complete {
			skipped = multierror.Append(skipped, fmt.Errorf("row %d: incomplete trivia question", i+2))
			continue
		}
		questions = append(questions, q)
	}

	if skipped != nil {
		logging.Debugf("[TriviaRepo] Skipped %d rows in %s: %v", len(skipped.Errors), r.path, skipped)
	}
	return questions, nil
}

// Save перезаписывает файл каталога целиком
func (r *TriviaRepo) Save(questions []entity.TriviaQuestion) error {
	rows := make([][]string, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, []string{
			q.Question,
			q.Options[0],
			q.Options[1],
			q.Options[2],
			q.Options[3],
			q.CorrectAnswer,
		})
	}

	if err := writeAtomic(r.path, TriviaHeader, rows); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	logging.Debugf("[TriviaRepo] Saved %d trivia questions to %s", len(questions), r.path)
	return nil
}
