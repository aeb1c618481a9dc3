package presenter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askme/internal/app/config"
)

func TestNew(t *testing.T) {
	p, err := New(config.FrontendTerminal, strings.NewReader(""), io.Discard)
	require.NoError(t, err)
	assert.IsType(t, &Terminal{}, p)

	p, err = New(config.FrontendZenity, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &Zenity{}, p)

	_, err = New("gtk", nil, nil)
	assert.ErrorIs(t, err, ErrUnknownFrontend)
}

func TestTerminal_Ask(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("Париж\n"), &out)

	resp, err := term.Ask(context.Background(), Question{Topic: "capitals", Text: "Столица Франции?", Number: 1, Total: 3})
	require.NoError(t, err)

	assert.Equal(t, "Париж", resp.Answer)
	assert.False(t, resp.HasNewRecord())
	assert.Contains(t, out.String(), "capitals [1/3]")
	assert.Contains(t, out.String(), "Столица Франции?")
}

func TestTerminal_AskWithNewRecord(t *testing.T) {
	input := "/add\n2+2?\n4\nРим\r\n"
	term := NewTerminal(strings.NewReader(input), io.Discard)

	resp, err := term.Ask(context.Background(), Question{Topic: "t", Text: "Столица Италии?", Number: 2})
	require.NoError(t, err)

	assert.Equal(t, Response{Answer: "Рим", NewQuestion: "2+2?", NewAnswer: "4"}, resp)
	assert.True(t, resp.HasNewRecord())
}

func TestTerminal_AskEOF(t *testing.T) {
	term := NewTerminal(strings.NewReader(""), io.Discard)

	_, err := term.Ask(context.Background(), Question{Text: "q"})
	assert.ErrorIs(t, err, ErrAborted)
}

func TestTerminal_AskLastLineWithoutNewline(t *testing.T) {
	term := NewTerminal(strings.NewReader("answer"), io.Discard)

	resp, err := term.Ask(context.Background(), Question{Text: "q"})
	require.NoError(t, err)
	assert.Equal(t, "answer", resp.Answer)
}

func TestTerminal_AskCanceled(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()

	term := NewTerminal(reader, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := term.Ask(ctx, Question{Text: "q"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTerminal_RevealAndNotify(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out)

	require.NoError(t, term.Reveal(context.Background(), Question{}, "Париж"))
	require.NoError(t, term.Notify(context.Background(), "Тема усвоена"))

	assert.Equal(t, "Правильный ответ: [Париж]\nТема усвоена\n", out.String())
}

type fakeExit int

func (e fakeExit) Error() string { return "exit status" }
func (e fakeExit) ExitCode() int { return int(e) }

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	calls  []call
	output string
	err    error
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	return []byte(f.output), f.err
}

func TestZenity_Ask(t *testing.T) {
	runner := &fakeRunner{output: "Париж\t2+2?\t 4 \n"}
	z := NewZenity(runner.run)

	resp, err := z.Ask(context.Background(), Question{Topic: "capitals", Text: "Столица Франции?", Number: 1})
	require.NoError(t, err)

	assert.Equal(t, Response{Answer: "Париж", NewQuestion: "2+2?", NewAnswer: "4"}, resp)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "zenity", runner.calls[0].name)
	assert.Contains(t, runner.calls[0].args, "--forms")
	assert.Contains(t, runner.calls[0].args, "Добавить новый вопрос")
	assert.Contains(t, runner.calls[0].args, "Столица Франции?")
}

func TestZenity_AskOnlyAnswer(t *testing.T) {
	runner := &fakeRunner{output: "Рим\n"}
	z := NewZenity(runner.run)

	resp, err := z.Ask(context.Background(), Question{Text: "q"})
	require.NoError(t, err)
	assert.Equal(t, Response{Answer: "Рим"}, resp)
}

func TestZenity_Cancel(t *testing.T) {
	runner := &fakeRunner{err: fakeExit(1)}
	z := NewZenity(runner.run)

	_, err := z.Ask(context.Background(), Question{Text: "q"})
	assert.ErrorIs(t, err, ErrAborted)

	// Закрытие окна с ответом не ошибка
	assert.NoError(t, z.Reveal(context.Background(), Question{}, "a"))
	assert.NoError(t, z.Notify(context.Background(), "msg"))
}

func TestZenity_Failure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("executable file not found")}
	z := NewZenity(runner.run)

	_, err := z.Ask(context.Background(), Question{Text: "q"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAborted)

	runner.err = fakeExit(5)
	err = z.Notify(context.Background(), "msg")
	assert.Error(t, err)
}

func TestZenity_Reveal(t *testing.T) {
	runner := &fakeRunner{}
	z := NewZenity(runner.run)

	require.NoError(t, z.Reveal(context.Background(), Question{Topic: "t", Number: 1}, "Париж"))
	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0].args, "--warning")
	assert.Contains(t, runner.calls[0].args, "Правильный ответ: [Париж]")
}
