package service

import (
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
)

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Load() ([]entity.QAEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QAEntry), args.Error(1)
}

func (m *MockQuestionRepository) Save(entries []entity.QAEntry) error {
	args := m.Called(entries)
	return args.Error(0)
}

func (m *MockQuestionRepository) Path() string {
	return "questions.csv"
}

// MockTriviaRepository реализует repository.TriviaRepository
type MockTriviaRepository struct {
	mock.Mock
}

func (m *MockTriviaRepository) Load() ([]entity.TriviaQuestion, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TriviaQuestion), args.Error(1)
}

func (m *MockTriviaRepository) Save(questions []entity.TriviaQuestion) error {
	args := m.Called(questions)
	return args.Error(0)
}

func (m *MockTriviaRepository) Path() string {
	return "trivia.csv"
}

// newLoadedStore создает хранилище с пустой базой и разрешенным сохранением
func newLoadedStore(t mock.TestingT) (*KnowledgeStore, *MockQuestionRepository) {
	repo := new(MockQuestionRepository)
	repo.On("Load").Return(nil, errNotFoundForTest)
	repo.On("Save", mock.Anything).Return(nil)
	store := NewKnowledgeStore(repo)
	if err := store.Load(); err != nil {
		t.Errorf("load failed: %v", err)
	}
	return store, repo
}

// newLoadedEngine создает движок с каталогом по умолчанию и детерминированной выборкой
func newLoadedEngine(t mock.TestingT, catalog []entity.TriviaQuestion) (*TriviaEngine, *MockTriviaRepository) {
	repo := new(MockTriviaRepository)
	repo.On("Load").Return(catalog, nil)
	repo.On("Save", mock.Anything).Return(nil)
	engine := NewTriviaEngine(repo, TriviaConfig{DefaultQuestions: 5, MaxQuestions: 20})
	engine.perm = identityPerm
	if err := engine.Load(); err != nil {
		t.Errorf("load failed: %v", err)
	}
	return engine, repo
}

func identityPerm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}
