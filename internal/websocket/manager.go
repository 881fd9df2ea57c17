package websocket

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/yourusername/trivia-chatbot/internal/logging"
)

// Event представляет структуру WebSocket-сообщения
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// inboundEvent - входящее сообщение, data разбирается обработчиком типа
type inboundEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EventHandler обрабатывает data сообщения определенного типа
type EventHandler func(data json.RawMessage, client *Client) error

// Manager хранит активные соединения и маршрутизирует сообщения по типу
type Manager struct {
	clients  sync.Map // ConnectionID -> *Client
	handlers map[string]EventHandler
}

// NewManager создает новый менеджер WebSocket
func NewManager() *Manager {
	return &Manager{handlers: make(map[string]EventHandler)}
}

// RegisterHandler регистрирует обработчик для определенного типа сообщений.
// Вызывается до приема соединений.
func (m *Manager) RegisterHandler(eventType string, handler EventHandler) {
	m.handlers[eventType] = handler
	logging.Debugf("[WebSocketManager] Registered handler for %s", eventType)
}

// Serve регистрирует клиента и обслуживает его до закрытия соединения
func (m *Manager) Serve(client *Client) {
	m.clients.Store(client.ConnectionID, client)
	logging.Infof("[WebSocketManager] Client connected: %s", client.ConnectionID)
	defer func() {
		m.clients.Delete(client.ConnectionID)
		logging.Infof("[WebSocketManager] Client disconnected: %s", client.ConnectionID)
	}()

	client.Run(m.HandleMessage)
}

// HandleMessage обрабатывает входящее сообщение от клиента.
// Некорректный JSON и неизвестный тип не закрывают соединение.
func (m *Manager) HandleMessage(message []byte, client *Client) error {
	var event inboundEvent
	if err := json.Unmarshal(message, &event); err != nil {
		m.SendErrorToClient(client, "invalid_message_format", "Invalid JSON format")
		return nil
	}

	handler, ok := m.handlers[event.Type]
	if !ok {
		m.SendErrorToClient(client, "unknown_message_type", fmt.Sprintf("Unknown message type: %s", event.Type))
		return nil
	}
	return handler(event.Data, client)
}

// SendErrorToClient отправляет стандартизированное сообщение об ошибке клиенту.
// Этот метод НЕ закрывает соединение.
func (m *Manager) SendErrorToClient(client *Client, code string, message string) {
	errorEvent := Event{
		Type: SERVER_ERROR,
		Data: map[string]string{
			"code":    code,
			"message": message,
		},
	}
	if err := client.SendJSON(errorEvent); err != nil {
		logging.Warnf("[WebSocketManager] Failed to send error to %s: %v", client.ConnectionID, err)
	}
}

// Count возвращает число активных соединений
func (m *Manager) Count() int {
	n := 0
	m.clients.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// CloseAll закрывает все соединения (при остановке сервера)
func (m *Manager) CloseAll() {
	m.clients.Range(func(_, v interface{}) bool {
		v.(*Client).Close()
		return true
	})
}
