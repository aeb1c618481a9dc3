// Package presenter показывает вопросы пользователю и читает ответы.
package presenter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"askme/internal/app/config"
)

var (
	// ErrAborted - пользователь закрыл окно или завершил ввод
	ErrAborted = errors.New("presenter: aborted by user")
	// ErrUnknownFrontend - неизвестный тип интерфейса
	ErrUnknownFrontend = errors.New("presenter: unknown frontend")
)

// Question - вопрос, показываемый пользователю
type Question struct {
	Topic  string
	Text   string
	Number int // порядковый номер в сеансе, с 1
	Total  int // 0 - без ограничения
}

// Response - ответ пользователя. NewQuestion и NewAnswer заполнены, если
// вместе с ответом пользователь добавил новый вопрос.
type Response struct {
	Answer      string
	NewQuestion string
	NewAnswer   string
}

// HasNewRecord сообщает, добавил ли пользователь новый вопрос
func (r Response) HasNewRecord() bool {
	return r.NewQuestion != "" || r.NewAnswer != ""
}

type Presenter interface {
	// Ask показывает вопрос и ждет ответа
	Ask(ctx context.Context, q Question) (Response, error)
	// Reveal показывает правильный ответ после неверного
	Reveal(ctx context.Context, q Question, answer string) error
	// Notify показывает сообщение
	Notify(ctx context.Context, msg string) error
}

// New создает интерфейс по имени из конфигурации
func New(frontend string, in io.Reader, out io.Writer) (Presenter, error) {
	switch frontend {
	case config.FrontendTerminal, "":
		return NewTerminal(in, out), nil
	case config.FrontendZenity:
		return NewZenity(nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFrontend, frontend)
	}
}

func title(q Question) string {
	if q.Total > 0 {
		return fmt.Sprintf("%s [%d/%d]", q.Topic, q.Number, q.Total)
	}
	return fmt.Sprintf("%s [%d]", q.Topic, q.Number)
}
