// Package quiz связывает темы, выбор вопросов, интерфейс и историю оценок.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"askme/internal/app/config"
	"askme/internal/app/quiz/presenter"
	"askme/internal/domain/grade"
	"askme/internal/domain/selector"
	"askme/internal/infrastructure/storage/sqlite"
	"askme/internal/infrastructure/storage/topics"
)

type App struct {
	config    *config.Config
	log       *slog.Logger
	layout    *topics.Layout
	selector  *selector.Selector
	presenter presenter.Presenter
	grades    grade.Servicer
	closer    io.Closer
	now       func() time.Time
}

type Option func(*App)

func WithPresenter(p presenter.Presenter) Option {
	return func(a *App) { a.presenter = p }
}

func WithSelector(s *selector.Selector) Option {
	return func(a *App) { a.selector = s }
}

// WithGrades подменяет сервис оценок; база оценок тогда не открывается
func WithGrades(g grade.Servicer) Option {
	return func(a *App) { a.grades = g }
}

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

func New(cfg *config.Config, log *slog.Logger, opts ...Option) (*App, error) {
	app := &App{
		config: cfg,
		log:    log.With("component", "quiz"),
		layout: topics.New(cfg.HomeDir),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(app)
	}

	if err := app.layout.Ensure(); err != nil {
		return nil, fmt.Errorf("ошибка подготовки каталога: %w", err)
	}

	if app.selector == nil {
		s, err := selector.New(selector.Config{})
		if err != nil {
			return nil, err
		}
		app.selector = s
	}

	if app.presenter == nil {
		p, err := presenter.New(cfg.Frontend, os.Stdin, os.Stdout)
		if err != nil {
			return nil, err
		}
		app.presenter = p
	}

	if app.grades == nil {
		storage, err := sqlite.New(app.layout.GradesDB())
		if err != nil {
			return nil, fmt.Errorf("ошибка открытия базы оценок: %w", err)
		}
		app.grades = grade.NewService(sqlite.NewGradeRepository(storage), log)
		app.closer = storage
	}

	return app, nil
}

// Close закрывает базу оценок
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// handleSignals отменяет контекст по SIGINT/SIGTERM
func (a *App) handleSignals(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		a.log.Info("Получен сигнал завершения", "signal", sig.String())
		cancel()
	case <-ctx.Done():
	}
}

// recordGrade сохраняет итог сеанса даже после отмены контекста
func (a *App) recordGrade(ctx context.Context, session *grade.Grade) {
	if session.Asked == 0 && session.Added == 0 {
		return
	}
	session.FinishedAt = a.now()

	saved, err := a.grades.Record(context.WithoutCancel(ctx), *session)
	if err != nil {
		a.log.Warn("Не удалось сохранить оценку", "topic", session.Topic, "error", err)
		return
	}
	*session = *saved
}

func isStop(ctx context.Context, err error) bool {
	return errors.Is(err, presenter.ErrAborted) || ctx.Err() != nil
}
