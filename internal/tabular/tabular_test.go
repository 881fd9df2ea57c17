package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/yourusername/trivia-chatbot/internal/pkg/errors"
)

func TestDecode_CSV(t *testing.T) {
	// Arrange
	input := "\ufeffquestion,answer1,answer2\n" +
		"Where is the library?,Building A,\n" +
		"\"Hours, weekdays?\",9-17\n"

	// Act
	table, err := Decode(strings.NewReader(input), FormatCSV)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"question", "answer1", "answer2"}, table.Header, "BOM должен быть удален из заголовка")
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Hours, weekdays?", table.Value(table.Rows[1], "question"))
	assert.Equal(t, "9-17", table.Value(table.Rows[1], "answer1"))
	assert.Equal(t, "", table.Value(table.Rows[1], "answer2"), "Короткая строка не должна вызывать ошибку")
}

func TestDecode_CSVSkipsLeadingBlankRows(t *testing.T) {
	input := ",,\nquestion,answer1\nq,a\n"

	table, err := Decode(strings.NewReader(input), FormatCSV)

	require.NoError(t, err)
	assert.Equal(t, []string{"question", "answer1"}, table.Header)
	assert.Len(t, table.Rows, 1)
}

func TestDecode_EmptyInput(t *testing.T) {
	table, err := Decode(strings.NewReader(""), FormatCSV)

	require.NoError(t, err)
	assert.Empty(t, table.Header)
	assert.Empty(t, table.Rows)
}

func TestDecode_XLSX(t *testing.T) {
	// Arrange: собираем книгу в памяти
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"question", "answer1", "answer2"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"What is IT?", "Tech support", "Help desk"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	// Act
	table, err := Decode(buf, FormatXLSX)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"question", "answer1", "answer2"}, table.Header)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Help desk", table.Value(table.Rows[0], "answer2"))
}

func TestDecode_InvalidXLSX(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not a zip"), FormatXLSX)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	_, err := Decode(strings.NewReader("x"), Format("JSON"))

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFormatFromName(t *testing.T) {
	testCases := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"questions.csv", FormatCSV, false},
		{"Questions.CSV", FormatCSV, false},
		{"/tmp/upload/book.xlsx", FormatXLSX, false},
		{"notes.txt", "", true},
		{"noext", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FormatFromName(tc.name)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" csv ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("")
	assert.Error(t, err)
}
