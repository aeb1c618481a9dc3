package quiz

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"askme/internal/domain/grade"
	"askme/internal/domain/record"
	"askme/internal/domain/selector"
	"askme/internal/infrastructure/importer"
)

// TopicInfo - краткие сведения о теме
type TopicInfo struct {
	Name     string  `json:"name"`
	Records  int     `json:"records"`
	Score    float64 `json:"score"`
	Mastered bool    `json:"mastered"`
	Error    string  `json:"error,omitempty"`
}

// loadOrCreate читает тему; отсутствующий файл дает пустую тему
func (a *App) loadOrCreate(topic string) (*record.Store, error) {
	path, err := a.layout.TopicPath(topic)
	if err != nil {
		return nil, err
	}

	store, err := record.Load(path, record.WithClock(a.now), record.WithLogger(a.log))
	if errors.Is(err, fs.ErrNotExist) {
		return record.NewStore(path, record.WithClock(a.now), record.WithLogger(a.log)), nil
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// AddQuestion добавляет вопрос в тему. Файл темы создается при необходимости.
func (a *App) AddQuestion(topic, question, answer string) error {
	store, err := a.loadOrCreate(topic)
	if err != nil {
		return err
	}

	if err := store.Append(question, answer); err != nil {
		return fmt.Errorf("ошибка добавления вопроса: %w", err)
	}
	if err := store.Save(); err != nil {
		return err
	}

	a.log.Info("Вопрос добавлен", "topic", topic, "records", store.Len())
	return nil
}

// Records возвращает записи темы в порядке файла
func (a *App) Records(topic string) ([]record.Record, error) {
	path, err := a.layout.TopicPath(topic)
	if err != nil {
		return nil, err
	}

	store, err := record.Load(path, record.WithClock(a.now), record.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	return store.Records(), nil
}

// Topics возвращает сведения обо всех темах. Тема с ошибкой чтения попадает в список с описанием ошибки.
func (a *App) Topics() ([]TopicInfo, error) {
	names, err := a.layout.List()
	if err != nil {
		return nil, err
	}

	infos := make([]TopicInfo, 0, len(names))
	for _, name := range names {
		info := TopicInfo{Name: name}

		records, err := a.Records(name)
		if err != nil {
			info.Error = err.Error()
			infos = append(infos, info)
			continue
		}

		info.Records = len(records)
		info.Score = averageRatio(records)
		// Select сортирует срез, файл темы не меняется
		info.Mastered = a.selector.Select(records).Outcome == selector.Mastered
		infos = append(infos, info)
	}

	return infos, nil
}

func averageRatio(records []record.Record) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, rec := range records {
		sum += rec.Ratio()
	}
	return sum / float64(len(records))
}

// Import добавляет в тему пары из файла. Пары, которые нельзя сохранить, пропускаются.
// Возвращает число добавленных и пропущенных пар.
func (a *App) Import(topic string, cfg importer.Config) (added, skipped int, err error) {
	pairs, err := importer.Read(cfg)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	store, err := a.loadOrCreate(topic)
	if err != nil {
		return 0, 0, err
	}

	for _, p := range pairs {
		if err := store.Append(p.Question, p.Answer); err != nil {
			a.log.Warn("Строка пропущена", "row", p.Row, "error", err)
			skipped++
			continue
		}
		added++
	}

	if added == 0 {
		return 0, skipped, nil
	}
	if err := store.Save(); err != nil {
		return 0, skipped, err
	}

	a.log.Info("Импорт завершен", "topic", topic, "added", added, "skipped", skipped)
	return added, skipped, nil
}

// History возвращает последние оценки темы
func (a *App) History(ctx context.Context, topic string, limit int) ([]grade.Grade, error) {
	if err := a.validateTopic(topic); err != nil {
		return nil, err
	}
	return a.grades.History(ctx, topic, limit)
}

// GradeSummary возвращает накопленную статистику по теме
func (a *App) GradeSummary(ctx context.Context, topic string) (*grade.Summary, error) {
	if err := a.validateTopic(topic); err != nil {
		return nil, err
	}
	return a.grades.Summary(ctx, topic)
}

func (a *App) validateTopic(topic string) error {
	_, err := a.layout.TopicPath(topic)
	return err
}
