package presenter

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const (
	zenityBinary    = "zenity"
	zenitySeparator = "\t"
	// zenityCancel - код выхода при нажатии "Отмена" или закрытии окна
	zenityCancel = 1
)

// exitCoder реализуется *exec.ExitError
type exitCoder interface {
	ExitCode() int
}

// Runner запускает внешнюю программу и возвращает ее stdout
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Zenity - интерфейс на диалогах zenity
type Zenity struct {
	run Runner
}

// NewZenity создает интерфейс zenity. При run == nil используется os/exec.
func NewZenity(run Runner) *Zenity {
	if run == nil {
		run = execRunner
	}
	return &Zenity{run: run}
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (z *Zenity) Ask(ctx context.Context, q Question) (Response, error) {
	out, err := z.exec(ctx,
		"--forms",
		"--title", title(q),
		"--text", q.Text,
		"--separator", zenitySeparator,
		"--add-entry", "Ответ",
		"--add-entry", "Добавить новый вопрос",
		"--add-entry", "Ответ на новый вопрос",
	)
	if err != nil {
		return Response{}, err
	}

	fields := strings.Split(strings.TrimRight(string(out), "\r\n"), zenitySeparator)
	for len(fields) < 3 {
		fields = append(fields, "")
	}

	return Response{
		Answer:      fields[0],
		NewQuestion: strings.TrimSpace(fields[1]),
		NewAnswer:   strings.TrimSpace(fields[2]),
	}, nil
}

func (z *Zenity) Reveal(ctx context.Context, q Question, answer string) error {
	_, err := z.exec(ctx,
		"--warning",
		"--no-wrap",
		"--title", title(q),
		"--text", fmt.Sprintf("Правильный ответ: [%s]", answer),
	)
	// Закрытие окна с ответом не прерывает сеанс
	if errors.Is(err, ErrAborted) {
		return nil
	}
	return err
}

func (z *Zenity) Notify(ctx context.Context, msg string) error {
	_, err := z.exec(ctx, "--info", "--no-wrap", "--text", msg)
	if errors.Is(err, ErrAborted) {
		return nil
	}
	return err
}

func (z *Zenity) exec(ctx context.Context, args ...string) ([]byte, error) {
	out, err := z.run(ctx, zenityBinary, args...)
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var exitErr exitCoder
	if errors.As(err, &exitErr) && exitErr.ExitCode() == zenityCancel {
		return nil, ErrAborted
	}
	return nil, fmt.Errorf("run %s: %w", zenityBinary, err)
}
