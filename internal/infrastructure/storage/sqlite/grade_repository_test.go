package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askme/internal/domain/grade"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	storage, err := New(filepath.Join(t.TempDir(), "grades.db"))
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestGradeRepository_CreateAndList(t *testing.T) {
	repo := NewGradeRepository(newTestStorage(t))
	ctx := context.Background()

	for i, g := range []grade.Grade{
		{SessionID: "s1", Topic: "capitals", Asked: 5, Correct: 3, StartedAt: time.Unix(100, 0), FinishedAt: time.Unix(200, 0)},
		{SessionID: "s2", Topic: "capitals", Asked: 4, Correct: 4, Mastered: true, StartedAt: time.Unix(300, 0), FinishedAt: time.Unix(400, 0)},
		{SessionID: "s3", Topic: "verbs", Asked: 2, Correct: 0, Added: 1, StartedAt: time.Unix(500, 0), FinishedAt: time.Unix(600, 0)},
	} {
		g := g
		id, err := repo.Create(ctx, &g)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id)
	}

	grades, err := repo.ListByTopic(ctx, "capitals", 10)
	require.NoError(t, err)
	require.Len(t, grades, 2)

	// Новые первыми
	assert.Equal(t, "s2", grades[0].SessionID)
	assert.True(t, grades[0].Mastered)
	assert.Equal(t, time.Unix(400, 0), grades[0].FinishedAt)
	assert.Equal(t, "s1", grades[1].SessionID)
	assert.Equal(t, 3, grades[1].Correct)

	limited, err := repo.ListByTopic(ctx, "capitals", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := repo.ListByTopic(ctx, "unknown", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGradeRepository_Summary(t *testing.T) {
	repo := NewGradeRepository(newTestStorage(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &grade.Grade{SessionID: "a", Topic: "t", Asked: 6, Correct: 3, StartedAt: time.Unix(1, 0), FinishedAt: time.Unix(10, 0)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &grade.Grade{SessionID: "b", Topic: "t", Asked: 4, Correct: 4, StartedAt: time.Unix(20, 0), FinishedAt: time.Unix(30, 0)})
	require.NoError(t, err)

	summary, err := repo.Summary(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Sessions)
	assert.Equal(t, 10, summary.Asked)
	assert.Equal(t, 7, summary.Correct)
	assert.Equal(t, time.Unix(30, 0), summary.LastSession)

	empty, err := repo.Summary(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Sessions)
	assert.True(t, empty.LastSession.IsZero())
}
