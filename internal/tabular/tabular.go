// Package tabular читает табличные данные (CSV и XLSX) в entity.Table.
// Первая непустая строка источника считается заголовком.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/trivia-chatbot/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-chatbot/internal/pkg/errors"
)

// Format - формат источника табличных данных
type Format string

const (
	FormatCSV  Format = "CSV"
	FormatXLSX Format = "XLSX"
)

// utf8BOM добавляется Excel при сохранении CSV в UTF-8
const utf8BOM = "\ufeff"

// ErrUnsupportedFormat возвращается для файлов с неизвестным расширением
var ErrUnsupportedFormat = fmt.Errorf("%w: unsupported file type, allowed: csv, xlsx", apperrors.ErrValidation)

// ParseFormat разбирает название формата (без учета регистра)
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToUpper(strings.TrimSpace(name))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// FormatFromName определяет формат по расширению имени файла
func FormatFromName(filename string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return "", ErrUnsupportedFormat
	}
	return ParseFormat(ext)
}

// Decode читает таблицу из r в указанном формате.
// Ошибки разбора оборачивают apperrors.ErrValidation.
func Decode(r io.Reader, format Format) (*entity.Table, error) {
	var (
		records [][]string
		err     error
	)
	switch format {
	case FormatCSV:
		records, err = readCSV(r)
	case FormatXLSX:
		records, err = readXLSX(r)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return newTable(records), nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Строки могут быть короче заголовка
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("%w: malformed CSV: %v", apperrors.ErrValidation, err)
		}
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return records, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a valid XLSX workbook: %v", apperrors.ErrValidation, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	// Импортируется только первый лист книги
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %v", apperrors.ErrValidation, sheets[0], err)
	}
	return rows, nil
}

// newTable отделяет заголовок от данных, пропуская пустые строки в начале
func newTable(records [][]string) *entity.Table {
	table := &entity.Table{}
	for i, rec := range records {
		if isBlank(rec) {
			continue
		}
		header := make([]string, len(rec))
		for j, h := range rec {
			header[j] = strings.TrimSpace(h)
		}
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
		table.Header = header
		table.Rows = records[i+1:]
		break
	}
	return table
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
