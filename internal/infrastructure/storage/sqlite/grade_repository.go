package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"askme/internal/domain/grade"
)

type GradeRepository struct {
	db *Storage
}

func NewGradeRepository(db *Storage) *GradeRepository {
	return &GradeRepository{db: db}
}

func (r *GradeRepository) Create(ctx context.Context, g *grade.Grade) (int64, error) {
	res, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO grades (session_id, topic, asked, correct, added, mastered, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, g.SessionID, g.Topic, g.Asked, g.Correct, g.Added, g.Mastered,
		g.StartedAt.Unix(), g.FinishedAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("insert grade: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("grade id: %w", err)
	}
	return id, nil
}

func (r *GradeRepository) ListByTopic(ctx context.Context, topic string, limit int) ([]grade.Grade, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, session_id, topic, asked, correct, added, mastered, started_at, finished_at
		FROM grades
		WHERE topic = ?
		ORDER BY finished_at DESC, id DESC
		LIMIT ?
	`, topic, limit)
	if err != nil {
		return nil, fmt.Errorf("query grades: %w", err)
	}
	defer rows.Close()

	var grades []grade.Grade
	for rows.Next() {
		var g grade.Grade
		var startedAt, finishedAt int64

		if err := rows.Scan(&g.ID, &g.SessionID, &g.Topic, &g.Asked, &g.Correct,
			&g.Added, &g.Mastered, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan grade: %w", err)
		}

		g.StartedAt = time.Unix(startedAt, 0)
		g.FinishedAt = time.Unix(finishedAt, 0)
		grades = append(grades, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grades: %w", err)
	}

	return grades, nil
}

func (r *GradeRepository) Summary(ctx context.Context, topic string) (*grade.Summary, error) {
	summary := &grade.Summary{Topic: topic}
	var last sql.NullInt64

	err := r.db.DB().QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(asked), 0), COALESCE(SUM(correct), 0), MAX(finished_at)
		FROM grades
		WHERE topic = ?
	`, topic).Scan(&summary.Sessions, &summary.Asked, &summary.Correct, &last)
	if err != nil {
		return nil, fmt.Errorf("grade summary: %w", err)
	}

	if last.Valid {
		summary.LastSession = time.Unix(last.Int64, 0)
	}
	return summary, nil
}
