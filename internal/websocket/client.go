package websocket

import (
	"bytes"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yourusername/trivia-chatbot/internal/logging"
)

const (
	// Время, отведенное на запись сообщения
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Период отправки ping (меньше pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего сообщения
	maxMessageSize = 4096

	defaultClientBufferSize = 16
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

// ClientConfig содержит настройки клиента
type ClientConfig struct {
	BufferSize     int
	PingInterval   time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
}

// DefaultClientConfig возвращает настройки по умолчанию
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BufferSize:     defaultClientBufferSize,
		PingInterval:   pingPeriod,
		PongWait:       pongWait,
		WriteWait:      writeWait,
		MaxMessageSize: maxMessageSize,
	}
}

// MessageHandler обрабатывает входящее сообщение. Ошибка закрывает соединение.
type MessageHandler func(message []byte, client *Client) error

// Client - одно WebSocket соединение чата
type Client struct {
	ConnectionID string

	conn   *websocket.Conn
	config ClientConfig
	send   chan []byte

	sendMu     sync.RWMutex // защищает send от отправки после закрытия
	sendClosed bool
}

// NewClient создает клиента для установленного соединения
func NewClient(conn *websocket.Conn, config ClientConfig) *Client {
	if config.BufferSize <= 0 {
		config.BufferSize = defaultClientBufferSize
	}
	return &Client{
		ConnectionID: uuid.New().String(),
		conn:         conn,
		config:       config,
		send:         make(chan []byte, config.BufferSize),
	}
}

// SendJSON ставит сообщение в очередь на отправку. Не блокирует:
// при переполненном буфере сообщение отбрасывается с ошибкой.
func (c *Client) SendJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	c.sendMu.RLock()
	defer c.sendMu.RUnlock()
	if c.sendClosed {
		return fmt.Errorf("client %s is closed", c.ConnectionID)
	}

	select {
	case c.send <- data:
		return nil
	default:
		return fmt.Errorf("send buffer full for client %s", c.ConnectionID)
	}
}

// Run запускает writePump в отдельной горутине и читает сообщения до закрытия соединения
func (c *Client) Run(handler MessageHandler) {
	go c.writePump()
	c.readPump(handler)
}

// Close закрывает очередь отправки, writePump отправит CloseMessage и закроет соединение
func (c *Client) Close() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.sendClosed {
		c.sendClosed = true
		close(c.send)
	}
}

func (c *Client) readPump(handler MessageHandler) {
	defer func() {
		logging.Debugf("[WebSocket] Read pump stopped for %s", c.ConnectionID)
		c.Close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logging.Warnf("[WebSocket] Read error (ConnID: %s): %v", c.ConnectionID, err)
			}
			return
		}

		if err := safeHandleMessage(message, c, handler); err != nil {
			logging.Warnf("[WebSocket] Handler error (ConnID: %s): %v. Closing connection.", c.ConnectionID, err)
			return
		}
	}
}

// safeHandleMessage вызывает обработчик, превращая панику в ошибку
func safeHandleMessage(message []byte, client *Client, handler MessageHandler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.Errorf("[WebSocket] PANIC recovered in message handler (ConnID: %s): %v\n%s",
				client.ConnectionID, r, string(debug.Stack()))
			err = fmt.Errorf("panic recovered: %v", r)
		}
	}()
	message = bytes.TrimSpace(bytes.ReplaceAll(message, newline, space))
	if handler == nil {
		return nil
	}
	return handler(message, client)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logging.Warnf("[WebSocket] Write error (ConnID: %s): %v", c.ConnectionID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
