package presenter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// addCommand - ввод, после которого пользователь добавляет новый вопрос
const addCommand = "/add"

// Terminal - интерфейс для терминала
type Terminal struct {
	out   io.Writer
	lines chan line
	// reading - читатель ввода уже запущен
	reading bool
	in      *bufio.Reader

	title  *color.Color
	prompt *color.Color
	wrong  *color.Color
	notice *color.Color
}

type line struct {
	text string
	err  error
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		out:    out,
		in:     bufio.NewReader(in),
		lines:  make(chan line),
		title:  color.New(color.FgCyan, color.Bold),
		prompt: color.New(color.FgYellow),
		wrong:  color.New(color.FgRed),
		notice: color.New(color.FgGreen),
	}

	if f, ok := out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		for _, c := range []*color.Color{t.title, t.prompt, t.wrong, t.notice} {
			c.DisableColor()
		}
	}

	return t
}

func (t *Terminal) Ask(ctx context.Context, q Question) (Response, error) {
	t.title.Fprintf(t.out, "\n%s\n", title(q))
	fmt.Fprintf(t.out, "%s\n", q.Text)
	t.prompt.Fprintf(t.out, "Ответ (%s - добавить вопрос): ", addCommand)

	answer, err := t.readLine(ctx)
	if err != nil {
		return Response{}, err
	}

	resp := Response{Answer: answer}
	if strings.TrimSpace(answer) != addCommand {
		return resp, nil
	}

	t.prompt.Fprint(t.out, "Новый вопрос: ")
	if resp.NewQuestion, err = t.readLine(ctx); err != nil {
		return Response{}, err
	}
	t.prompt.Fprint(t.out, "Ответ на новый вопрос: ")
	if resp.NewAnswer, err = t.readLine(ctx); err != nil {
		return Response{}, err
	}

	t.prompt.Fprintf(t.out, "Ответ на вопрос \"%s\": ", q.Text)
	if resp.Answer, err = t.readLine(ctx); err != nil {
		return Response{}, err
	}

	return resp, nil
}

func (t *Terminal) Reveal(_ context.Context, _ Question, answer string) error {
	_, err := t.wrong.Fprintf(t.out, "Правильный ответ: [%s]\n", answer)
	return err
}

func (t *Terminal) Notify(_ context.Context, msg string) error {
	_, err := t.notice.Fprintln(t.out, msg)
	return err
}

// readLine читает строку без символа перевода. Отмена контекста прерывает ожидание,
// конец ввода возвращает ErrAborted.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	if !t.reading {
		t.reading = true
		go t.readLoop()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-t.lines:
		if !ok {
			return "", ErrAborted
		}
		if l.err != nil {
			return "", l.err
		}
		return l.text, nil
	}
}

func (t *Terminal) readLoop() {
	defer close(t.lines)
	for {
		text, err := t.in.ReadString('\n')
		if text != "" {
			t.lines <- line{text: strings.TrimRight(text, "\r\n")}
		}
		if err != nil {
			if err != io.EOF {
				t.lines <- line{err: fmt.Errorf("read input: %w", err)}
			}
			return
		}
	}
}
