package entity

import "strings"

// Table - табличные данные с обязательной строкой заголовка
// (файлы базы вопросов, каталога викторины и импорта).
type Table struct {
	Header []string
	Rows   [][]string
}

// Index возвращает номер колонки по имени заголовка или -1
func (t *Table) Index(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// HasColumns проверяет наличие всех перечисленных колонок
func (t *Table) HasColumns(names ...string) bool {
	for _, name := range names {
		if t.Index(name) < 0 {
			return false
		}
	}
	return true
}

// Value возвращает обрезанное значение ячейки или "", если колонки или ячейки нет
func (t *Table) Value(row []string, name string) string {
	idx := t.Index(name)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
