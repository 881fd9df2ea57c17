package entity

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// MaxStoredAnswers - количество колонок с ответами в файле базы вопросов.
// Ответы сверх этого числа при сохранении отбрасываются.
const MaxStoredAnswers = 4

// folder выполняет полное Unicode case folding (а не только ToLower)
var folder = cases.Fold()

// NormalizeQuestion приводит текст вопроса к ключу хранилища:
// обрезает пробелы по краям и выполняет case folding.
func NormalizeQuestion(question string) string {
	return folder.String(strings.TrimSpace(question))
}

// QAEntry представляет вопрос базы знаний с его вариантами ответа
type QAEntry struct {
	Question string   `json:"question"` // Нормализованный ключ
	Answers  []string `json:"answers"`
}

// HasAnswer проверяет наличие ответа (точное, регистрозависимое сравнение)
func (e *QAEntry) HasAnswer(answer string) bool {
	return slices.Contains(e.Answers, answer)
}

// IsEmpty сообщает, что у записи нет ни одного ответа.
// Такие записи в хранилище не допускаются.
func (e *QAEntry) IsEmpty() bool {
	return len(e.Answers) == 0
}

// StoredAnswers возвращает ответы в том виде, в котором они попадут в файл (не более MaxStoredAnswers)
func (e *QAEntry) StoredAnswers() []string {
	if len(e.Answers) <= MaxStoredAnswers {
		return e.Answers
	}
	return e.Answers[:MaxStoredAnswers]
}

// IsTruncatedOnSave сообщает, что часть ответов будет потеряна при сохранении
func (e *QAEntry) IsTruncatedOnSave() bool {
	return len(e.Answers) > MaxStoredAnswers
}
