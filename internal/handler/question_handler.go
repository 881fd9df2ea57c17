package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
	"github.com/yourusername/trivia-chatbot/internal/handler/dto"
	"github.com/yourusername/trivia-chatbot/internal/logging"
	"github.com/yourusername/trivia-chatbot/internal/service"
	"github.com/yourusername/trivia-chatbot/internal/tabular"
)

// ExportFormatKey - ключ формата экспорта в контексте Gin
const ExportFormatKey = "exportFormat"

// QuestionHandler обрабатывает запросы к базе знаний
type QuestionHandler struct {
	store          *service.KnowledgeStore
	maxUploadBytes int64
}

// NewQuestionHandler создает обработчик базы знаний
func NewQuestionHandler(store *service.KnowledgeStore, maxUploadBytes int64) *QuestionHandler {
	return &QuestionHandler{store: store, maxUploadBytes: maxUploadBytes}
}

// AddQuestion добавляет ответ на вопрос
// POST /api/question/add
func (h *QuestionHandler) AddQuestion(c *gin.Context) {
	var req dto.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if err := h.store.Add(req.Question, req.Answer); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStatusResponse("Question added successfully"))
}

// RemoveQuestion удаляет вопрос
// POST /api/question/remove
func (h *QuestionHandler) RemoveQuestion(c *gin.Context) {
	var req dto.RemoveQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	removed, err := h.store.Remove(req.Question)
	if err != nil {
		handleError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	c.JSON(http.StatusOK, dto.NewStatusResponse("Question removed successfully"))
}

// ListQuestions возвращает вопросы базы знаний
// GET /api/question/list
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, dto.QuestionListResponse{Questions: h.store.List()})
}

// Upload импортирует файл вопросов (.csv или .xlsx) из multipart-поля "file"
// POST /api/upload
func (h *QuestionHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File is too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file part in the request"})
		return
	}
	if fileHeader.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}

	format, err := tabular.FormatFromName(fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         "Invalid file type",
			"allowed_types": []string{"csv", "xlsx"},
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		handleError(c, fmt.Errorf("failed to open uploaded file: %w", err))
		return
	}
	defer f.Close()

	result, err := h.store.ImportFrom(f, format)
	if err != nil {
		logging.Warnf("[QuestionHandler] Import of %s failed: %v", fileHeader.Filename, err)
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{
		Status:   "success",
		Message:  fmt.Sprintf("Successfully imported %d questions from %s", result.Imported, fileHeader.Filename),
		Imported: result.Imported,
		Skipped:  result.Skipped,
	})
}

// ExportQuestions выгружает базу знаний в CSV или Excel формате
// GET /api/question/export?format=csv|xlsx
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	format := c.MustGet(ExportFormatKey).(tabular.Format)
	entries := h.store.Entries()
	filename := fmt.Sprintf("questions_%s", time.Now().Format("2006-01-02"))

	switch format {
	case tabular.FormatXLSX:
		h.exportXLSX(c, entries, filename)
	default:
		h.exportCSV(c, entries, filename)
	}
}

// exportRow возвращает строку файла базы вопросов (не более четырех ответов)
func exportRow(e entity.QAEntry) []string {
	row := make([]string, 1+entity.MaxStoredAnswers)
	row[0] = sanitizeForExcel(e.Question)
	for i, a := range e.StoredAnswers() {
		row[i+1] = sanitizeForExcel(a)
	}
	return row
}

func exportHeader() []string {
	return append([]string{tabular.ColQuestion}, tabular.AnswerColumns[:]...)
}

// exportCSV экспортирует базу в CSV с правильным экранированием спецсимволов
func (h *QuestionHandler) exportCSV(c *gin.Context, entries []entity.QAEntry, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	writer.Write(exportHeader())
	for _, e := range entries {
		writer.Write(exportRow(e))
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		logging.Errorf("[QuestionHandler] CSV export failed: %v", err)
	}
}

// exportXLSX экспортирует базу в Excel с использованием StreamWriter
func (h *QuestionHandler) exportXLSX(c *gin.Context, entries []entity.QAEntry, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Questions"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		handleError(c, fmt.Errorf("failed to rename sheet: %w", err))
		return
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		handleError(c, fmt.Errorf("failed to create stream writer: %w", err))
		return
	}

	header := exportHeader()
	headerRow := make([]interface{}, len(header))
	for i, v := range header {
		headerRow[i] = v
	}
	if err := sw.SetRow("A1", headerRow); err != nil {
		handleError(c, fmt.Errorf("failed to write header: %w", err))
		return
	}

	for i, e := range entries {
		values := exportRow(e)
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			handleError(c, fmt.Errorf("failed to write row %d: %w", i+2, err))
			return
		}
	}
	if err := sw.Flush(); err != nil {
		handleError(c, fmt.Errorf("failed to flush workbook: %w", err))
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	if err := f.Write(c.Writer); err != nil {
		logging.Errorf("[QuestionHandler] XLSX export failed: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV.
// Импорт снимает это экранирование (tabular.UnescapeFormula).
func sanitizeForExcel(s string) string {
	return tabular.EscapeFormula(s)
}
