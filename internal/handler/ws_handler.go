package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/yourusername/trivia-chatbot/internal/handler/dto"
	"github.com/yourusername/trivia-chatbot/internal/logging"
	"github.com/yourusername/trivia-chatbot/internal/service"
	"github.com/yourusername/trivia-chatbot/internal/websocket"
)

// WSHandler обрабатывает WebSocket соединения чата
type WSHandler struct {
	manager  *websocket.Manager
	chat     *service.ChatService
	trivia   *service.TriviaEngine
	upgrader gorillaws.Upgrader
}

// NewWSHandler создает обработчик WebSocket.
// allowedOrigins синхронизирован с CORS конфигурацией.
func NewWSHandler(
	manager *websocket.Manager,
	chat *service.ChatService,
	trivia *service.TriviaEngine,
	allowedOrigins []string,
) *WSHandler {
	handler := &WSHandler{
		manager: manager,
		chat:    chat,
		trivia:  trivia,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// Не браузерный клиент (curl, CLI)
				if origin == "" {
					return true
				}
				if slices.Contains(allowedOrigins, origin) {
					return true
				}
				logging.Warnf("[WSHandler] Rejected unauthorized origin: %s", origin)
				return false
			},
		},
	}

	// Регистрируем обработчики сообщений один раз при создании обработчика
	handler.registerMessageHandlers()

	return handler
}

// HandleConnection обрабатывает входящее WebSocket соединение
// GET /ws
func (h *WSHandler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже записал ответ с ошибкой
		logging.Warnf("[WSHandler] Error upgrading connection: %v", err)
		return
	}

	client := websocket.NewClient(conn, websocket.DefaultClientConfig())
	h.manager.Serve(client)
}

// registerMessageHandlers регистрирует обработчики для различных типов сообщений
func (h *WSHandler) registerMessageHandlers() {
	h.manager.RegisterHandler(websocket.CHAT_ASK, func(data json.RawMessage, client *websocket.Client) error {
		var req dto.AskRequest
		if err := json.Unmarshal(data, &req); err != nil {
			h.manager.SendErrorToClient(client, "invalid_format", fmt.Sprintf("Failed to parse %s event", websocket.CHAT_ASK))
			return nil
		}

		resp, err := h.chat.Ask(req.Question)
		if err != nil {
			h.manager.SendErrorToClient(client, "ask_error", err.Error())
			return nil
		}
		if err := client.SendJSON(websocket.Event{Type: websocket.CHAT_REPLY, Data: resp}); err != nil {
			logging.Warnf("[WSHandler] Failed to send reply to %s: %v", client.ConnectionID, err)
		}
		return nil
	})

	h.manager.RegisterHandler(websocket.TRIVIA_STATUS, func(_ json.RawMessage, client *websocket.Client) error {
		if err := client.SendJSON(websocket.Event{Type: websocket.TRIVIA_STATUS, Data: h.trivia.Status()}); err != nil {
			logging.Warnf("[WSHandler] Failed to send trivia status to %s: %v", client.ConnectionID, err)
		}
		return nil
	})
}
