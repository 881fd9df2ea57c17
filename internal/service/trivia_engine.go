package service

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
	"github.com/yourusername/trivia-chatbot/internal/domain/repository"
	"github.com/yourusername/trivia-chatbot/internal/logging"
	apperrors "github.com/yourusername/trivia-chatbot/internal/pkg/errors"
)

// TriviaConfig - размеры игры
type TriviaConfig struct {
	DefaultQuestions int // используется, когда размер не указан
	MaxQuestions     int // ограничение сверху для API
}

// triviaSession - состояние единственной игры процесса.
// current != nil только при active; remaining не содержит current.
type triviaSession struct {
	active    bool
	score     int
	total     int
	size      int
	current   *entity.TriviaQuestion
	remaining []entity.TriviaQuestion
}

// TriviaEngine управляет каталогом вопросов викторины и текущей игрой
type TriviaEngine struct {
	repo   repository.TriviaRepository
	config TriviaConfig

	mu      sync.Mutex
	catalog []entity.TriviaQuestion
	session triviaSession
	perm    func(n int) []int
}

// NewTriviaEngine создает движок викторины. Для чтения каталога вызовите Load.
func NewTriviaEngine(repo repository.TriviaRepository, config TriviaConfig) *TriviaEngine {
	if config.DefaultQuestions <= 0 {
		config.DefaultQuestions = 5
	}
	if config.MaxQuestions < config.DefaultQuestions {
		config.MaxQuestions = config.DefaultQuestions
	}
	return &TriviaEngine{
		repo:   repo,
		config: config,
		perm:   rand.Perm,
	}
}

// Load читает каталог при старте. Если файла нет или он пуст, каталог заполняется
// вопросами по умолчанию и сохраняется. Файл с неверным заголовком не перезаписывается:
// движок стартует с пустым каталогом.
func (e *TriviaEngine) Load() error {
	questions, err := e.repo.Load()
	switch {
	case isNotFound(err):
		e.seedDefaults()
		return nil
	case isValidation(err):
		logging.Warnf("[TriviaEngine] Invalid trivia file %s, starting with an empty catalog: %v", e.repo.Path(), err)
		questions = nil
	case err != nil:
		return fmt.Errorf("failed to load trivia catalog: %w", err)
	}

	e.replaceCatalog(questions)
	return nil
}

// Reload перечитывает каталог без заполнения вопросами по умолчанию.
// При ошибке чтения остается прежний каталог. Текущая игра продолжается со своими вопросами.
func (e *TriviaEngine) Reload() error {
	questions, err := e.repo.Load()
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to reload trivia catalog: %w", err)
	}
	e.replaceCatalog(questions)
	return nil
}

func (e *TriviaEngine) replaceCatalog(questions []entity.TriviaQuestion) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.catalog = questions
	logging.Infof("[TriviaEngine] Loaded %d trivia questions from %s", len(questions), e.repo.Path())
}

func (e *TriviaEngine) seedDefaults() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.catalog = defaultTriviaQuestions()
	logging.Infof("[TriviaEngine] No trivia questions in %s, seeding %d defaults", e.repo.Path(), len(e.catalog))
	if err := e.repo.Save(e.catalog); err != nil {
		// Каталог по умолчанию остается в памяти
		logging.Errorf("[TriviaEngine] Failed to save default trivia questions: %v", err)
	}
}

// DefaultSize возвращает размер игры по умолчанию
func (e *TriviaEngine) DefaultSize() int {
	return e.config.DefaultQuestions
}

// ClampSize подставляет размер по умолчанию для n <= 0 и ограничивает n сверху
func (e *TriviaEngine) ClampSize(n int) int {
	if n <= 0 {
		return e.config.DefaultQuestions
	}
	return min(n, e.config.MaxQuestions)
}

// Start начинает новую игру из n случайных вопросов каталога (без повторов).
// Активная игра завершается принудительно, ее итог отбрасывается.
func (e *TriviaEngine) Start(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: number of questions must be positive, got %d", apperrors.ErrValidation, n)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.catalog) < n {
		return fmt.Errorf("%w: need %d, have %d", ErrNotEnoughQuestions, n, len(e.catalog))
	}

	if e.session.active {
		prev := e.endLocked()
		logging.Infof("[TriviaEngine] Previous game force-ended at %d/%d", prev.Score, prev.Total)
	}

	remaining := make([]entity.TriviaQuestion, 0, n)
	for _, idx := range e.perm(len(e.catalog))[:n] {
		remaining = append(remaining, e.catalog[idx])
	}
	e.session = triviaSession{
		active:    true,
		size:      n,
		remaining: remaining,
	}

	logging.Infof("[TriviaEngine] Started trivia game with %d questions", n)
	return nil
}

// Next переходит к следующему вопросу. Если ответ на текущий вопрос еще не дан,
// текущий вопрос возвращается повторно. Когда очередь пуста, игра завершается
// и возвращается NextGameEnded с итогом.
func (e *TriviaEngine) Next() (entity.NextResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.session.active {
		return entity.NextResult{}, apperrors.ErrNoActiveGame
	}

	if e.session.current == nil {
		if len(e.session.remaining) == 0 {
			summary := e.endLocked()
			return entity.NextResult{Kind: entity.NextGameEnded, Summary: summary}, nil
		}
		next := e.session.remaining[0]
		e.session.remaining = e.session.remaining[1:]
		e.session.current = &next
	}

	number := e.session.total + 1
	view := entity.NewQuestionView(e.session.current, number, number+len(e.session.remaining))
	return entity.NextResult{Kind: entity.NextQuestion, Question: view}, nil
}

// Answer обрабатывает ответ буквой A-D на текущий вопрос.
// Некорректная буква не расходует ход.
func (e *TriviaEngine) Answer(letter string) entity.AnswerResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.session.active || e.session.current == nil {
		return entity.AnswerResult{Kind: entity.AnswerNoActiveGame}
	}

	selected, ok := entity.ParseOptionLetter(letter)
	if !ok {
		logging.Debugf("[TriviaEngine] Invalid answer format: %q", letter)
		return entity.AnswerResult{Kind: entity.AnswerInvalidFormat}
	}

	current := e.session.current
	e.session.total++
	kind := entity.AnswerIncorrect
	if current.IsCorrect(selected) {
		e.session.score++
		kind = entity.AnswerCorrect
	}
	e.session.current = nil

	return entity.AnswerResult{
		Kind:          kind,
		CorrectAnswer: current.CorrectAnswer,
		Score:         e.session.score,
		Total:         e.session.total,
	}
}

// End завершает игру и возвращает итог. false, если игры нет.
func (e *TriviaEngine) End() (*entity.GameSummary, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.session.active {
		return nil, false
	}
	return e.endLocked(), true
}

func (e *TriviaEngine) endLocked() *entity.GameSummary {
	summary := entity.NewGameSummary(e.session.score, e.session.total)
	logging.Infof("[TriviaEngine] Game ended: %d/%d (%.1f%%)", summary.Score, summary.Total, summary.Percentage)
	e.session = triviaSession{}
	return summary
}

// Status возвращает снимок состояния игры
func (e *TriviaEngine) Status() entity.TriviaStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	status := entity.TriviaStatus{
		Active: e.session.active,
		Score:  e.session.score,
		Total:  e.session.total,
	}
	if e.session.current != nil {
		status.CurrentQuestion = e.session.current.Question
	}
	return status
}

// Remaining возвращает число вопросов, оставшихся в очереди
func (e *TriviaEngine) Remaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.session.remaining)
}

// AddQuestion проверяет и добавляет вопрос в каталог, затем сохраняет каталог
func (e *TriviaEngine) AddQuestion(question, optionA, optionB, optionC, optionD, correctAnswer string) error {
	q, err := entity.NewTriviaQuestion(question, optionA, optionB, optionC, optionD, correctAnswer)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.catalog = append(e.catalog, *q)
	logging.Infof("[TriviaEngine] Added trivia question %q", q.Question)

	if err := e.repo.Save(e.catalog); err != nil {
		logging.Errorf("[TriviaEngine] Failed to save %s: %v", e.repo.Path(), err)
		return asPersistenceError(err)
	}
	return nil
}

// List возвращает тексты вопросов каталога в порядке каталога
func (e *TriviaEngine) List() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	questions := make([]string, 0, len(e.catalog))
	for _, q := range e.catalog {
		questions = append(questions, q.Question)
	}
	return questions
}

// Catalog возвращает копию каталога
func (e *TriviaEngine) Catalog() []entity.TriviaQuestion {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]entity.TriviaQuestion(nil), e.catalog...)
}
