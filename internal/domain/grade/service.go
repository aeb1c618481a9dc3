package grade

import (
	"context"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/exp/slog"
)

const (
	sessionIDLength = 12
	defaultLimit    = 20
)

type Servicer interface {
	Record(ctx context.Context, g Grade) (*Grade, error)
	History(ctx context.Context, topic string, limit int) ([]Grade, error)
	Summary(ctx context.Context, topic string) (*Summary, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "grade_service"),
		now:  time.Now,
	}
}

// NewSessionID генерирует идентификатор сеанса
func NewSessionID() (string, error) {
	id, err := gonanoid.New(sessionIDLength)
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return id, nil
}

// Record сохраняет итог сеанса. Пустые идентификатор сеанса и время окончания заполняются.
func (s *Service) Record(ctx context.Context, g Grade) (*Grade, error) {
	if g.Topic == "" || g.Asked < 0 || g.Correct < 0 || g.Correct > g.Asked {
		return nil, fmt.Errorf("%w: topic=%q asked=%d correct=%d", ErrInvalidGrade, g.Topic, g.Asked, g.Correct)
	}

	if g.SessionID == "" {
		id, err := NewSessionID()
		if err != nil {
			return nil, err
		}
		g.SessionID = id
	}
	if g.FinishedAt.IsZero() {
		g.FinishedAt = s.now()
	}
	if g.StartedAt.IsZero() {
		g.StartedAt = g.FinishedAt
	}

	id, err := s.repo.Create(ctx, &g)
	if err != nil {
		s.log.Error("failed to save grade", "topic", g.Topic, "error", err)
		return nil, fmt.Errorf("save grade: %w", err)
	}
	g.ID = id

	s.log.Debug("grade saved",
		"topic", g.Topic,
		"session_id", g.SessionID,
		"asked", g.Asked,
		"correct", g.Correct,
	)

	return &g, nil
}

// History возвращает последние оценки темы, новые первыми
func (s *Service) History(ctx context.Context, topic string, limit int) ([]Grade, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	grades, err := s.repo.ListByTopic(ctx, topic, limit)
	if err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

func (s *Service) Summary(ctx context.Context, topic string) (*Summary, error) {
	summary, err := s.repo.Summary(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("grade summary: %w", err)
	}
	if summary.Sessions == 0 {
		return nil, ErrNoHistory
	}
	return summary, nil
}
