package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-chatbot/internal/tabular"
)

// ExtractFormatParam создает middleware для извлечения и валидации формата файла из query-параметра.
// paramName - имя параметра (например, "format"), fallback - формат при отсутствии параметра.
// contextKey - ключ, под которым tabular.Format будет сохранен в контексте Gin.
func ExtractFormatParam(paramName, contextKey string, fallback tabular.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.Query(paramName))
		if raw == "" {
			c.Set(contextKey, fallback)
			c.Next()
			return
		}

		format, err := tabular.ParseFormat(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":         "Invalid " + paramName,
				"allowed_types": []string{"csv", "xlsx"},
			})
			return
		}
		c.Set(contextKey, format)
		c.Next()
	}
}
