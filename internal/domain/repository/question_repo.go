package repository

import (
	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
)

// QuestionRepository определяет методы для хранения базы вопросов и ответов.
// Хранилище перезаписывается целиком при каждом сохранении.
type QuestionRepository interface {
	// Load возвращает записи в порядке файла. Отсутствующий файл - apperrors.ErrNotFound.
	Load() ([]entity.QAEntry, error)
	Save(entries []entity.QAEntry) error
	Path() string
}
