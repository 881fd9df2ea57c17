package service

import (
	"errors"
	"fmt"

	apperrors "github.com/yourusername/trivia-chatbot/internal/pkg/errors"
)

// Определяем кастомные ошибки для сервисов
var (
	// ErrNotEnoughQuestions - в каталоге меньше вопросов, чем запрошено для игры
	ErrNotEnoughQuestions = fmt.Errorf("%w: not enough trivia questions in catalog", apperrors.ErrConflict)
	// ErrEmptyInput - пустой запрос чат-боту
	ErrEmptyInput = fmt.Errorf("%w: empty input", apperrors.ErrValidation)
)

// isNotFound проверяет, что ошибка означает отсутствие файла или записи
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}

// isValidation проверяет, что файл прочитан, но его содержимое не распознано
func isValidation(err error) bool {
	return errors.Is(err, apperrors.ErrValidation)
}

// asPersistenceError гарантирует, что ошибка записи распознается как ErrPersistence
func asPersistenceError(err error) error {
	if errors.Is(err, apperrors.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
}
