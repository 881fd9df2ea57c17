package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, в каталоге меньше вопросов, чем запрошено).
	ErrConflict = errors.New("resource state conflict")

	// ErrPersistence используется, когда изменение не удалось записать в файл хранилища.
	// Изменение в памяти при этом сохраняется.
	ErrPersistence = errors.New("failed to persist changes")

	// ErrNoActiveGame используется, когда операция требует активной игры.
	ErrNoActiveGame = errors.New("no active trivia game")

	// ErrInvalidAnswerFormat используется для ответов вне набора A/B/C/D.
	ErrInvalidAnswerFormat = errors.New("invalid answer format, use A, B, C or D")
)
