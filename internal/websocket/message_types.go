package websocket

// Типы сообщений чата
const (
	// CHAT_ASK - вопрос пользователя, data: {"question": "..."}
	CHAT_ASK = "chat:ask"

	// CHAT_REPLY - ответ чат-бота, data: ChatResponse
	CHAT_REPLY = "chat:reply"

	// TRIVIA_STATUS - запрос состояния викторины
	TRIVIA_STATUS = "trivia:status"

	// SERVER_ERROR - ошибка обработки сообщения
	SERVER_ERROR = "server:error"
)
