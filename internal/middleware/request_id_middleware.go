package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/trivia-chatbot/internal/logging"
)

// RequestIDHeader - заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-ID"

// RequestIDKey - ключ идентификатора запроса в контексте Gin
const RequestIDKey = "request_id"

// RequestID присваивает запросу идентификатор (или берет его из заголовка клиента)
// и пишет в журнал строку с итогом обработки
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()

		logging.Debugf("[HTTP] %s %s %s -> %d", id, c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}
