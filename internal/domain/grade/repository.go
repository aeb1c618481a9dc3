package grade

import (
	"context"
)

// Repository хранит историю оценок. Записи только добавляются.
type Repository interface {
	Create(ctx context.Context, grade *Grade) (int64, error)
	ListByTopic(ctx context.Context, topic string, limit int) ([]Grade, error)
	Summary(ctx context.Context, topic string) (*Summary, error)
}
