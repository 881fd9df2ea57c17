package repository

import (
	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
)

// TriviaRepository определяет методы для хранения каталога вопросов викторины
type TriviaRepository interface {
	// Load возвращает каталог в порядке файла. Отсутствующий или пустой файл - apperrors.ErrNotFound.
	Load() ([]entity.TriviaQuestion, error)
	Save(questions []entity.TriviaQuestion) error
	Path() string
}
