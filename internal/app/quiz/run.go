package quiz

import (
	"context"
	"fmt"
	"time"

	"askme/internal/app/quiz/presenter"
	"askme/internal/domain/grade"
	"askme/internal/domain/record"
	"askme/internal/domain/selector"
)

const (
	msgEmpty    = "В теме нет вопросов"
	msgMastered = "Тема усвоена"
)

// Run задает вопросы темы из конфигурации, пока тема не усвоена, не исчерпан лимит
// вопросов или пользователь не прервал сеанс. После каждого ответа файл темы
// перечитывается и сохраняется, поэтому правки файла между вопросами не теряются.
func (a *App) Run(ctx context.Context) (*grade.Grade, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.handleSignals(ctx, cancel)

	path, err := a.layout.TopicPath(a.config.Topic)
	if err != nil {
		return nil, err
	}

	session := &grade.Grade{Topic: a.config.Topic, StartedAt: a.now()}
	defer a.recordGrade(ctx, session)

	log := a.log.With("topic", a.config.Topic)
	log.Debug("session started", "limit", a.config.NumQuestions, "force", a.config.Force)

	for !a.limitReached(session) {
		if ctx.Err() != nil {
			break
		}

		done, err := a.cycle(ctx, path, session)
		if err != nil {
			return session, err
		}
		if done || a.limitReached(session) {
			break
		}

		if err := a.wait(ctx); err != nil {
			break
		}
	}

	log.Debug("session finished", "asked", session.Asked, "correct", session.Correct)
	return session, nil
}

// cycle проводит один вопрос: загрузка, выбор, ответ, обновление статистики, сохранение.
// done сообщает, что сеанс окончен.
func (a *App) cycle(ctx context.Context, path string, session *grade.Grade) (bool, error) {
	store, err := record.Load(path, record.WithClock(a.now), record.WithLogger(a.log))
	if err != nil {
		return true, fmt.Errorf("ошибка загрузки темы %q: %w", a.config.Topic, err)
	}

	res := a.selector.Select(store.Records())
	switch res.Outcome {
	case selector.Empty:
		return true, a.notify(ctx, msgEmpty)
	case selector.Mastered:
		session.Mastered = true
		if !a.config.Force {
			return true, a.notify(ctx, msgMastered)
		}
	}

	// Копия: Append может переразместить срез записей
	current := *res.Record

	question := presenter.Question{
		Topic:  a.config.Topic,
		Text:   current.Question,
		Number: session.Asked + 1,
		Total:  a.config.NumQuestions,
	}

	resp, err := a.presenter.Ask(ctx, question)
	if err != nil {
		if isStop(ctx, err) {
			return true, nil
		}
		return true, fmt.Errorf("ошибка получения ответа: %w", err)
	}

	if resp.HasNewRecord() {
		if err := store.Append(resp.NewQuestion, resp.NewAnswer); err != nil {
			a.log.Warn("Новый вопрос не добавлен", "question", resp.NewQuestion, "error", err)
			if err := a.notify(ctx, fmt.Sprintf("Новый вопрос не добавлен: %v", err)); err != nil {
				return true, err
			}
		} else {
			session.Added++
		}
	}

	session.Asked++
	store.IncrementPresentation(current.Question)

	correct := current.Matches(resp.Answer)
	if correct {
		session.Correct++
		store.IncrementCorrect(current.Question)
	}

	if err := store.Save(); err != nil {
		return true, fmt.Errorf("ошибка сохранения темы %q: %w", a.config.Topic, err)
	}

	a.log.Debug("question answered",
		"question", current.Question,
		"correct", correct,
		"ratio", current.Ratio(),
	)

	if !correct {
		if err := a.presenter.Reveal(ctx, question, current.Answer); err != nil {
			if isStop(ctx, err) {
				return true, nil
			}
			return true, fmt.Errorf("ошибка показа ответа: %w", err)
		}
	}

	return false, nil
}

func (a *App) limitReached(session *grade.Grade) bool {
	return a.config.NumQuestions > 0 && session.Asked >= a.config.NumQuestions
}

// wait выдерживает паузу между вопросами; отмена контекста ее прерывает
func (a *App) wait(ctx context.Context) error {
	if a.config.Interval <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(a.config.Interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (a *App) notify(ctx context.Context, msg string) error {
	if err := a.presenter.Notify(ctx, msg); err != nil && !isStop(ctx, err) {
		return fmt.Errorf("ошибка вывода сообщения: %w", err)
	}
	return nil
}
