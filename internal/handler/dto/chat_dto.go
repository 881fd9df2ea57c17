package dto

// AskRequest - вопрос чат-боту
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// AddQuestionRequest - добавление ответа в базу знаний
type AddQuestionRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

// RemoveQuestionRequest - удаление вопроса из базы знаний
type RemoveQuestionRequest struct {
	Question string `json:"question" binding:"required"`
}

// StatusResponse - ответ об успешной операции
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// QuestionListResponse - список вопросов базы знаний
type QuestionListResponse struct {
	Questions []string `json:"questions"`
}

// UploadResponse - итог импорта файла
type UploadResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// NewStatusResponse создает ответ об успешной операции
func NewStatusResponse(message string) StatusResponse {
	return StatusResponse{Status: "success", Message: message}
}
