package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
	"github.com/yourusername/trivia-chatbot/internal/repository/csvfile"
	"github.com/yourusername/trivia-chatbot/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	store  *service.KnowledgeStore
	engine *service.TriviaEngine
}

// newTestEnv собирает роутер поверх настоящих сервисов с файлами во временном каталоге
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	store := service.NewKnowledgeStore(csvfile.NewQuestionRepo(filepath.Join(dir, "questions.csv")))
	require.NoError(t, store.Load())
	engine := service.NewTriviaEngine(csvfile.NewTriviaRepo(filepath.Join(dir, "trivia.csv")),
		service.TriviaConfig{DefaultQuestions: 5, MaxQuestions: 20})
	require.NoError(t, engine.Load())
	chat := service.NewChatService(store, engine)

	router := NewRouter(Handlers{
		Chat:     NewChatHandler(chat),
		Question: NewQuestionHandler(store, 1<<20),
		Trivia:   NewTriviaHandler(engine),
	}, RouterOptions{})

	return &testEnv{router: router, store: store, engine: engine}
}

func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Тело ответа должно быть валидным JSON: %s", w.Body.String())
	return resp
}

// correctLetter находит букву правильного ответа по тексту вопроса
func correctLetter(t *testing.T, engine *service.TriviaEngine, question string) string {
	t.Helper()
	for _, q := range engine.Catalog() {
		if q.Question == question {
			return entity.OptionLetter(q.CorrectIndex())
		}
	}
	t.Fatalf("вопрос %q не найден в каталоге", question)
	return ""
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"), "Идентификатор запроса должен быть в ответе")
}

func TestAsk_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "empty body", body: nil},
		{name: "missing question", body: map[string]string{"text": "hi"}},
		{name: "blank question", body: map[string]string{"question": "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/ask", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestQuestionLifecycle(t *testing.T) {
	env := newTestEnv(t)

	// Act: добавление
	w := env.do(http.MethodPost, "/api/question/add", map[string]string{
		"question": "Where is the library?",
		"answer":   "In building A.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "success", parseJSONResponse(t, w)["status"])

	// Assert: вопрос в списке и находится чатом без учета регистра
	w = env.do(http.MethodGet, "/api/question/list", nil)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, []interface{}{"where is the library?"}, resp["questions"])

	w = env.do(http.MethodPost, "/api/ask", map[string]string{"question": "WHERE IS THE LIBRARY?"})
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseJSONResponse(t, w)
	assert.Equal(t, "In building A.", resp["response"])
	assert.Equal(t, "answer", resp["type"])

	// Act: удаление
	w = env.do(http.MethodPost, "/api/question/remove", map[string]string{"question": "where is the library?"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPost, "/api/question/remove", map[string]string{"question": "where is the library?"})
	assert.Equal(t, http.StatusNotFound, w.Code, "Повторное удаление должно вернуть 404")
	assert.Equal(t, "Question not found", parseJSONResponse(t, w)["error"])
}

func TestAsk_UnknownQuestion(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/ask", map[string]string{"question": "what is the meaning of life"})

	require.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, service.MsgUnknown, resp["response"])
	assert.Equal(t, "unknown", resp["type"])
}

func newUploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload_CSV(t *testing.T) {
	env := newTestEnv(t)
	content := "question,answer1,answer2\nWhat time does the gym open?,At 6 AM.,\n,orphan answer,\n"

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, newUploadRequest(t, "faq.csv", []byte(content)))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := parseJSONResponse(t, w)
	assert.EqualValues(t, 1, resp["imported"])
	assert.EqualValues(t, 1, resp["skipped"])
	assert.Equal(t, []string{"what time does the gym open?"}, env.store.List())
}

func TestUpload_InvalidFileType(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, newUploadRequest(t, "faq.txt", []byte("hello")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid file type", parseJSONResponse(t, w)["error"])
}

func TestUpload_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExport_CSV(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.Add("formula", "=SUM(A1:A2)"))

	w := env.do(http.MethodGet, "/api/question/export", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "\ufeffquestion,answer1,answer2,answer3,answer4"), "CSV должен начинаться с BOM и заголовка")
	assert.Contains(t, body, "formula,'=SUM(A1:A2)", "Формулы должны экранироваться")
}

func TestExport_CSVImportsBackUnchanged(t *testing.T) {
	// Arrange: вопрос и ответ, начинающиеся как формулы
	source := newTestEnv(t)
	require.NoError(t, source.store.Add("-5 degrees outside?", "=SUM(A1:A2)"))
	export := source.do(http.MethodGet, "/api/question/export", nil)
	require.Equal(t, http.StatusOK, export.Code)

	// Act: загружаем экспорт в чистую базу
	target := newTestEnv(t)
	w := httptest.NewRecorder()
	target.router.ServeHTTP(w, newUploadRequest(t, "export.csv", export.Body.Bytes()))

	// Assert
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"-5 degrees outside?"}, target.store.List(), "Экранирование не должно менять вопрос")
	answer, err := target.store.Lookup("-5 degrees outside?")
	require.NoError(t, err)
	assert.Equal(t, "=SUM(A1:A2)", answer)
}

func TestExport_XLSX(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.Add("where is the gym", "Building C"))

	w := env.do(http.MethodGet, "/api/question/export?format=xlsx", nil)

	require.Equal(t, http.StatusOK, w.Code)
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Questions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "where is the gym", rows[1][0])
	assert.Equal(t, "Building C", rows[1][1])
}

func TestExport_InvalidFormat(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/question/export?format=pdf", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrivia_FullGame(t *testing.T) {
	env := newTestEnv(t)

	// Act: старт игры из двух вопросов
	w := env.do(http.MethodPost, "/api/trivia/start", map[string]int{"num_questions": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := parseJSONResponse(t, w)
	assert.Equal(t, true, resp["game_active"])
	assert.EqualValues(t, 2, resp["total"], "total должен совпадать с размером игры")
	assert.EqualValues(t, 0, resp["score"])
	current := resp["current_question"].(map[string]interface{})
	assert.EqualValues(t, 1, current["question_number"])
	assert.EqualValues(t, 2, current["total_questions"])

	// Правильный ответ на первый вопрос
	letter := correctLetter(t, env.engine, current["question"].(string))
	w = env.do(http.MethodPost, "/api/trivia/answer", map[string]string{"answer": strings.ToLower(letter)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = parseJSONResponse(t, w)
	assert.Equal(t, "correct", resp["result"])
	assert.EqualValues(t, 1, resp["score"])
	next := resp["next_question"].(map[string]interface{})
	assert.EqualValues(t, 2, next["question_number"])

	// Некорректная буква не расходует ход
	w = env.do(http.MethodPost, "/api/trivia/answer", map[string]string{"answer": "E"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Правильный ответ на последний вопрос завершает игру
	letter = correctLetter(t, env.engine, next["question"].(string))
	w = env.do(http.MethodPost, "/api/trivia/answer", map[string]string{"answer": letter})
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseJSONResponse(t, w)
	assert.Equal(t, true, resp["game_over"])
	final := resp["final_result"].(map[string]interface{})
	assert.EqualValues(t, 2, final["score"])
	assert.EqualValues(t, 100, final["percentage"])
	assert.Equal(t, entity.TierExcellentMessage, final["message"])

	// Assert: игра завершена
	w = env.do(http.MethodGet, "/api/trivia/status", nil)
	assert.Equal(t, false, parseJSONResponse(t, w)["active"])
}

func TestTrivia_StartWithoutBodyUsesDefaultSize(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/trivia/start", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := parseJSONResponse(t, w)
	assert.EqualValues(t, 5, resp["total"])
	current := resp["current_question"].(map[string]interface{})
	assert.EqualValues(t, 5, current["total_questions"])
}

func TestTrivia_StartClampsToMax(t *testing.T) {
	env := newTestEnv(t)

	// 100 > max (20), каталог содержит 15 вопросов
	w := env.do(http.MethodPost, "/api/trivia/start", map[string]int{"num_questions": 100})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, "Failed to start trivia", resp["error"])
	assert.Equal(t, "Not enough questions available", resp["details"])
}

func TestTrivia_NoActiveGame(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/trivia/answer", map[string]string{"answer": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No active trivia game", parseJSONResponse(t, w)["error"])

	w = env.do(http.MethodPost, "/api/trivia/next", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/trivia/end", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no_active_game", parseJSONResponse(t, w)["status"])
}

func TestTrivia_NextRepeatsUnansweredQuestion(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPost, "/api/trivia/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := parseJSONResponse(t, w)["current_question"].(map[string]interface{})

	w = env.do(http.MethodPost, "/api/trivia/next", nil)

	require.Equal(t, http.StatusOK, w.Code)
	again := parseJSONResponse(t, w)["current_question"].(map[string]interface{})
	assert.Equal(t, first["question"], again["question"], "Без ответа должен возвращаться тот же вопрос")
}

func TestTrivia_EndReturnsSummary(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/trivia/start", nil).Code)

	w := env.do(http.MethodPost, "/api/trivia/end", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, "ended", resp["status"])
	final := resp["final_score"].(map[string]interface{})
	assert.EqualValues(t, 0, final["total"])
	assert.Equal(t, entity.TierKeepMessage, final["message"])
}

func TestTrivia_AddAndList(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]string{
		"question":       "Which office issues student ID cards?",
		"option_a":       "Registrar",
		"option_b":       "Cafeteria",
		"option_c":       "Gym",
		"option_d":       "Parking",
		"correct_answer": "Registrar",
	}

	w := env.do(http.MethodPost, "/api/trivia/add", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodGet, "/api/trivia/list", nil)
	list := parseJSONResponse(t, w)["trivia_questions"].([]interface{})
	assert.Len(t, list, 16)
	assert.Contains(t, list, "Which office issues student ID cards?")

	// correct_answer не совпадает ни с одним вариантом
	body["correct_answer"] = "Library"
	w = env.do(http.MethodPost, "/api/trivia/add", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
