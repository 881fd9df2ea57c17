package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
	"github.com/yourusername/trivia-chatbot/internal/domain/repository"
	"github.com/yourusername/trivia-chatbot/internal/logging"
	apperrors "github.com/yourusername/trivia-chatbot/internal/pkg/errors"
	"github.com/yourusername/trivia-chatbot/internal/tabular"
)

// ImportResult - итог импорта таблицы вопросов
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// KnowledgeStore хранит базу вопросов и ответов.
// Каждая операция, включая запись файла, выполняется под одной блокировкой.
type KnowledgeStore struct {
	repo repository.QuestionRepository

	mu      sync.Mutex
	answers map[string][]string
	order   []string // порядок вставки ключей
}

// NewKnowledgeStore создает пустое хранилище. Для чтения файла вызовите Load.
func NewKnowledgeStore(repo repository.QuestionRepository) *KnowledgeStore {
	return &KnowledgeStore{
		repo:    repo,
		answers: make(map[string][]string),
	}
}

// Load читает файл базы вопросов, заменяя текущее содержимое.
// Отсутствующий или нераспознанный файл означает пустую базу.
func (s *KnowledgeStore) Load() error {
	entries, err := s.repo.Load()
	switch {
	case isNotFound(err):
		logging.Infof("[KnowledgeStore] %s not found, starting with an empty knowledge base", s.repo.Path())
	case isValidation(err):
		// Файл не перезаписывается, пока пользователь не изменит базу
		logging.Warnf("[KnowledgeStore] Invalid questions file %s, starting with an empty knowledge base: %v", s.repo.Path(), err)
	case err != nil:
		return fmt.Errorf("failed to load questions: %w", err)
	}
	if err != nil {
		entries = nil
	}

	s.replace(entries)
	return nil
}

// Reload перечитывает файл (используется при изменении файла на диске).
// Нераспознанный файл не меняет текущую базу.
func (s *KnowledgeStore) Reload() error {
	entries, err := s.repo.Load()
	if err != nil {
		if !isNotFound(err) {
			return fmt.Errorf("failed to reload questions: %w", err)
		}
		entries = nil
	}

	s.replace(entries)
	return nil
}

func (s *KnowledgeStore) replace(entries []entity.QAEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.answers = make(map[string][]string, len(entries))
	s.order = make([]string, 0, len(entries))
	for _, e := range entries {
		if _, exists := s.answers[e.Question]; !exists {
			s.order = append(s.order, e.Question)
		}
		s.answers[e.Question] = e.Answers
	}

	logging.Infof("[KnowledgeStore] Loaded %d questions from %s", len(s.order), s.repo.Path())
}

// Add добавляет ответ к вопросу. Повторное добавление того же ответа ничего не меняет.
func (s *KnowledgeStore) Add(question, answer string) error {
	key := entity.NormalizeQuestion(question)
	answer = strings.TrimSpace(answer)
	if key == "" || answer == "" {
		return fmt.Errorf("%w: question and answer are required", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.answers[key]
	if slices.Contains(existing, answer) {
		logging.Debugf("[KnowledgeStore] Answer already present for %q", key)
		return nil
	}
	if !exists {
		s.order = append(s.order, key)
	}
	s.answers[key] = append(existing, answer)
	logging.Infof("[KnowledgeStore] Added answer for %q (%d answers)", key, len(s.answers[key]))

	return s.persistLocked()
}

// Remove удаляет вопрос со всеми ответами. Возвращает false, если вопроса нет.
func (s *KnowledgeStore) Remove(question string) (bool, error) {
	key := entity.NormalizeQuestion(question)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.answers[key]; !exists {
		logging.Debugf("[KnowledgeStore] Remove: question %q not found", key)
		return false, nil
	}
	delete(s.answers, key)
	s.order = slices.DeleteFunc(s.order, func(k string) bool { return k == key })
	logging.Infof("[KnowledgeStore] Removed question %q", key)

	return true, s.persistLocked()
}

// Lookup возвращает случайный ответ на вопрос или ErrNotFound
func (s *KnowledgeStore) Lookup(query string) (string, error) {
	key := entity.NormalizeQuestion(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	answers := s.answers[key]
	if key == "" || len(answers) == 0 {
		return "", fmt.Errorf("%w: no answer for %q", apperrors.ErrNotFound, key)
	}
	return answers[rand.Intn(len(answers))], nil
}

// List возвращает нормализованные вопросы в порядке добавления
func (s *KnowledgeStore) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.order)
}

// Entries возвращает копию базы в порядке добавления
func (s *KnowledgeStore) Entries() []entity.QAEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entriesLocked()
}

// Import заменяет ответы вопросов из таблицы (в отличие от Add, ответы не дописываются).
// Без колонок question и answer1 возвращает ErrValidation и не меняет базу.
func (s *KnowledgeStore) Import(table *entity.Table) (ImportResult, error) {
	entries, skipped, err := tabular.ParseQAEntries(table)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{}
	if skipped != nil {
		result.Skipped = len(skipped.Errors)
		logging.Debugf("[KnowledgeStore] Import skipped %d rows: %v", result.Skipped, skipped)
	}
	result.Imported = len(table.Rows) - result.Skipped

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		if _, exists := s.answers[e.Question]; !exists {
			s.order = append(s.order, e.Question)
		}
		s.answers[e.Question] = e.Answers
	}
	logging.Infof("[KnowledgeStore] Imported %d rows (%d skipped)", result.Imported, result.Skipped)

	if result.Imported == 0 {
		return result, nil
	}
	return result, s.persistLocked()
}

// ImportFrom читает таблицу из r в указанном формате и импортирует ее
func (s *KnowledgeStore) ImportFrom(r io.Reader, format tabular.Format) (ImportResult, error) {
	table, err := tabular.Decode(r, format)
	if err != nil {
		return ImportResult{}, err
	}
	return s.Import(table)
}

// ImportFile импортирует файл, формат определяется по расширению (.csv, .xlsx)
func (s *KnowledgeStore) ImportFile(path string) (ImportResult, error) {
	format, err := tabular.FormatFromName(path)
	if err != nil {
		return ImportResult{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ImportResult{}, fmt.Errorf("%w: import file %s", apperrors.ErrNotFound, path)
		}
		return ImportResult{}, fmt.Errorf("failed to open import file %s: %w", path, err)
	}
	defer f.Close()

	result, err := s.ImportFrom(f, format)
	if err != nil {
		logging.Errorf("[KnowledgeStore] Failed to import %s: %v", path, err)
		return result, err
	}
	return result, nil
}

func (s *KnowledgeStore) entriesLocked() []entity.QAEntry {
	entries := make([]entity.QAEntry, 0, len(s.order))
	for _, key := range s.order {
		entries = append(entries, entity.QAEntry{Question: key, Answers: slices.Clone(s.answers[key])})
	}
	return entries
}

// persistLocked сохраняет базу целиком. Изменение в памяти при ошибке остается.
func (s *KnowledgeStore) persistLocked() error {
	if err := s.repo.Save(s.entriesLocked()); err != nil {
		logging.Errorf("[KnowledgeStore] Failed to save %s: %v", s.repo.Path(), err)
		return asPersistenceError(err)
	}
	return nil
}
