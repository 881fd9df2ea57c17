package handler

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trivia-chatbot/internal/repository/csvfile"
	"github.com/yourusername/trivia-chatbot/internal/service"
	"github.com/yourusername/trivia-chatbot/internal/websocket"
)

type wsMessage struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// newWSTestServer поднимает HTTP сервер с маршрутом /ws/chat
func newWSTestServer(t *testing.T, origins []string) (*httptest.Server, *service.KnowledgeStore) {
	t.Helper()
	dir := t.TempDir()

	store := service.NewKnowledgeStore(csvfile.NewQuestionRepo(filepath.Join(dir, "questions.csv")))
	require.NoError(t, store.Load())
	engine := service.NewTriviaEngine(csvfile.NewTriviaRepo(filepath.Join(dir, "trivia.csv")),
		service.TriviaConfig{DefaultQuestions: 5, MaxQuestions: 20})
	require.NoError(t, engine.Load())
	chat := service.NewChatService(store, engine)
	manager := websocket.NewManager()

	router := NewRouter(Handlers{
		Chat:     NewChatHandler(chat),
		Question: NewQuestionHandler(store, 0),
		Trivia:   NewTriviaHandler(engine),
		WS:       NewWSHandler(manager, chat, engine, origins),
	}, RouterOptions{})

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		manager.CloseAll()
		srv.Close()
	})
	return srv, store
}

func dialWS(t *testing.T, srv *httptest.Server, header http.Header) (*gorillaws.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat"
	return gorillaws.DefaultDialer.Dial(url, header)
}

func readWS(t *testing.T, conn *gorillaws.Conn) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWS_ChatAsk(t *testing.T) {
	// Arrange
	srv, store := newWSTestServer(t, nil)
	require.NoError(t, store.Add("where is the cafeteria?", "Ground floor of building B."))
	conn, _, err := dialWS(t, srv, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Act
	err = conn.WriteJSON(map[string]interface{}{
		"type": websocket.CHAT_ASK,
		"data": map[string]string{"question": "Where is the cafeteria?"},
	})
	require.NoError(t, err)

	// Assert
	msg := readWS(t, conn)
	assert.Equal(t, websocket.CHAT_REPLY, msg.Type)
	assert.Equal(t, "Ground floor of building B.", msg.Data["response"])
	assert.Equal(t, "answer", msg.Data["type"])
}

func TestWS_TriviaThroughChat(t *testing.T) {
	srv, _ := newWSTestServer(t, nil)
	conn, _, err := dialWS(t, srv, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type": websocket.CHAT_ASK,
		"data": map[string]string{"question": "trivia"},
	}))
	msg := readWS(t, conn)
	assert.Equal(t, "trivia_start", msg.Data["type"])
	assert.NotNil(t, msg.Data["trivia_question"], "Первый вопрос должен прийти вместе с ответом")

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": websocket.TRIVIA_STATUS}))
	msg = readWS(t, conn)
	assert.Equal(t, websocket.TRIVIA_STATUS, msg.Type)
	assert.Equal(t, true, msg.Data["active"])
}

func TestWS_InvalidMessagesKeepConnection(t *testing.T) {
	srv, _ := newWSTestServer(t, nil)
	conn, _, err := dialWS(t, srv, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Некорректный JSON
	require.NoError(t, conn.WriteMessage(gorillaws.TextMessage, []byte("not json")))
	msg := readWS(t, conn)
	assert.Equal(t, websocket.SERVER_ERROR, msg.Type)
	assert.Equal(t, "invalid_message_format", msg.Data["code"])

	// Неизвестный тип
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "quiz:join"}))
	msg = readWS(t, conn)
	assert.Equal(t, "unknown_message_type", msg.Data["code"])

	// Соединение живо: обычный вопрос обрабатывается
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type": websocket.CHAT_ASK,
		"data": map[string]string{"question": "unknown thing"},
	}))
	msg = readWS(t, conn)
	assert.Equal(t, websocket.CHAT_REPLY, msg.Type)
	assert.Equal(t, service.MsgUnknown, msg.Data["response"])
}

func TestWS_RejectsUnknownOrigin(t *testing.T) {
	srv, _ := newWSTestServer(t, []string{"http://localhost:3000"})

	header := http.Header{}
	header.Set("Origin", "https://evil.example.com")
	_, resp, err := dialWS(t, srv, header)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "http://localhost:3000")
	conn, _, err := dialWS(t, srv, header)
	require.NoError(t, err, "Разрешенный origin должен подключаться")
	conn.Close()
}
