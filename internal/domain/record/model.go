package record

import (
	"strings"
	"time"
)

// Позиции полей в строке файла темы. Порядок фиксирован.
const (
	FieldQuestion = iota
	FieldAnswer
	FieldCreatedAt
	FieldLastPresentedAt
	FieldPresentationCount
	FieldCorrectCount

	// FieldCount - каноническое число полей записи
	FieldCount
)

// Значения по умолчанию для статистики новой или укороченной записи
const (
	DefaultPresentationCount = 1
	DefaultCorrectCount      = 0
)

// Record - вопрос с ответом и статистикой показов
type Record struct {
	Question          string `json:"question"`
	Answer            string `json:"answer"`
	CreatedAt         int64  `json:"created_at"`
	LastPresentedAt   int64  `json:"last_presented_at"`
	PresentationCount int    `json:"presentation_count"`
	CorrectCount      int    `json:"correct_count"`
}

// Ratio возвращает долю верных ответов. Запись без показов имеет долю 0.
func (r Record) Ratio() float64 {
	if r.PresentationCount <= 0 {
		return 0
	}
	return float64(r.CorrectCount) / float64(r.PresentationCount)
}

// Created возвращает время создания записи
func (r Record) Created() time.Time {
	return time.Unix(r.CreatedAt, 0)
}

// LastPresented возвращает время последнего показа
func (r Record) LastPresented() time.Time {
	return time.Unix(r.LastPresentedAt, 0)
}

// Matches сравнивает ответ пользователя с ожидаемым без учета регистра
func (r Record) Matches(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(r.Answer))
}
