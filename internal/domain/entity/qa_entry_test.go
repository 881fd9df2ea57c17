package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuestion(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"  Where Is The Library?  ", "where is the library?"},
		{"WHAT'S THE TIME?", "what's the time?"},
		{"\tÉCOLE\n", "école"},
		{"   ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeQuestion(tc.input))
		})
	}
}

func TestQAEntry_StoredAnswers(t *testing.T) {
	entry := &QAEntry{Question: "q", Answers: []string{"1", "2", "3", "4", "5"}}

	assert.True(t, entry.IsTruncatedOnSave())
	assert.Equal(t, []string{"1", "2", "3", "4"}, entry.StoredAnswers(), "В файл попадают только первые 4 ответа")

	short := &QAEntry{Question: "q", Answers: []string{"1"}}
	assert.False(t, short.IsTruncatedOnSave())
	assert.Equal(t, []string{"1"}, short.StoredAnswers())
}

func TestQAEntry_HasAnswer(t *testing.T) {
	entry := &QAEntry{Question: "q", Answers: []string{"Yes"}}

	assert.True(t, entry.HasAnswer("Yes"))
	assert.False(t, entry.HasAnswer("yes"), "Сравнение ответов регистрозависимое")
	assert.False(t, entry.IsEmpty())
	assert.True(t, (&QAEntry{}).IsEmpty())
}

func TestTable_Value(t *testing.T) {
	table := &Table{
		Header: []string{" question ", "answer1"},
		Rows:   [][]string{{"  Q  "}},
	}

	assert.Equal(t, 0, table.Index("question"))
	assert.Equal(t, -1, table.Index("answer2"))
	assert.True(t, table.HasColumns("question", "answer1"))
	assert.False(t, table.HasColumns("question", "answer2"))
	assert.Equal(t, "Q", table.Value(table.Rows[0], "question"))
	assert.Equal(t, "", table.Value(table.Rows[0], "answer1"), "Отсутствующая ячейка возвращает пустую строку")
	assert.Equal(t, "", table.Value(table.Rows[0], "answer4"))
}
