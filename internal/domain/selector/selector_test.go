package selector

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askme/internal/domain/record"
)

// countingSource считает обращения к генератору
type countingSource struct {
	rand.Source
	calls int
}

func (c *countingSource) Int63() int64 {
	c.calls++
	return c.Source.Int63()
}

func newSelector(t *testing.T, seed int64) *Selector {
	t.Helper()
	s, err := New(Config{Rand: rand.New(rand.NewSource(seed))})
	require.NoError(t, err)
	return s
}

func rec(question string, last int64, presented, correct int) record.Record {
	return record.Record{
		Question:          question,
		Answer:            "answer",
		CreatedAt:         1,
		LastPresentedAt:   last,
		PresentationCount: presented,
		CorrectCount:      correct,
	}
}

func TestNew(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultMasteryThreshold, s.threshold)
	assert.Equal(t, DefaultPercentile, s.percentile)
	assert.NotNil(t, s.rng)

	_, err = New(Config{MasteryThreshold: 1.5})
	assert.Error(t, err)

	_, err = New(Config{Percentile: 100})
	assert.Error(t, err)

	_, err = New(Config{Percentile: -3})
	assert.Error(t, err)
}

func TestSelect_Empty(t *testing.T) {
	s := newSelector(t, 1)

	res := s.Select(nil)
	assert.Equal(t, Empty, res.Outcome)
	assert.Nil(t, res.Record)

	res = s.Select([]record.Record{})
	assert.Equal(t, Empty, res.Outcome)
	assert.NotEqual(t, Mastered, res.Outcome)
}

func TestSelect_SingleRecordSkipsScoring(t *testing.T) {
	src := &countingSource{Source: rand.NewSource(1)}
	s, err := New(Config{Rand: rand.New(src)})
	require.NoError(t, err)

	records := []record.Record{rec("only", 10, 50, 50)}
	res := s.Select(records)

	assert.Equal(t, Selected, res.Outcome)
	require.NotNil(t, res.Record)
	assert.Same(t, &records[0], res.Record)
	assert.Zero(t, src.calls)
}

func TestSelect_PrefersWeakRecords(t *testing.T) {
	s := newSelector(t, 1)

	records := []record.Record{
		rec("strong", 10, 10, 8),
		rec("weak", 20, 10, 3),
		rec("middle", 30, 10, 5),
	}

	res := s.Select(records)
	require.Equal(t, Selected, res.Outcome)
	assert.Equal(t, "weak", res.Record.Question)
}

func TestSelect_EqualRatioPrefersLongestUnseen(t *testing.T) {
	s := newSelector(t, 1)

	records := []record.Record{
		rec("recent", 300, 10, 4),
		rec("old", 100, 10, 4),
		rec("strong", 50, 10, 9),
	}

	res := s.Select(records)
	require.Equal(t, Selected, res.Outcome)
	assert.Equal(t, "old", res.Record.Question)
}

func TestSelect_SortsByLastPresented(t *testing.T) {
	s := newSelector(t, 1)

	records := []record.Record{
		rec("c", 300, 10, 4),
		rec("a", 100, 10, 5),
		rec("b", 200, 10, 6),
	}
	s.Select(records)

	assert.Equal(t, "a", records[0].Question)
	assert.Equal(t, "b", records[1].Question)
	assert.Equal(t, "c", records[2].Question)
}

func TestSelect_ZeroPresentationsIsRatioZero(t *testing.T) {
	s := newSelector(t, 1)

	records := []record.Record{
		rec("never", 10, 0, 0),
		rec("broken", 20, 0, 5),
		rec("good", 30, 10, 9),
	}

	var res Result
	assert.NotPanics(t, func() { res = s.Select(records) })
	require.Equal(t, Selected, res.Outcome)
	assert.NotEqual(t, "good", res.Record.Question)
}

func TestSelect_Mastered(t *testing.T) {
	s := newSelector(t, 7)

	records := make([]record.Record, 0, 10)
	for i := 0; i < 10; i++ {
		presented := 2 + i
		correct := (presented*6 + 9) / 10 // не меньше 60%
		records = append(records, rec(string(rune('a'+i)), int64(100+i), presented, correct))
	}
	for _, r := range records {
		require.GreaterOrEqual(t, r.Ratio(), DefaultMasteryThreshold)
	}

	res := s.Select(records)
	assert.Equal(t, Mastered, res.Outcome)
	require.NotNil(t, res.Record)
}

func TestSelect_NotMasteredWhenPercentileIsWeak(t *testing.T) {
	s := newSelector(t, 1)

	records := []record.Record{
		rec("w1", 10, 10, 2),
		rec("w2", 20, 10, 3),
		rec("s1", 30, 10, 9),
		rec("s2", 40, 10, 9),
	}

	res := s.Select(records)
	require.Equal(t, Selected, res.Outcome)
	assert.Equal(t, "w1", res.Record.Question)
}

func TestSelect_Deterministic(t *testing.T) {
	build := func() []record.Record {
		return []record.Record{
			rec("a", 10, 1, 0),
			rec("b", 10, 1, 1),
			rec("c", 10, 1, 0),
			rec("d", 10, 1, 1),
		}
	}

	first := newSelector(t, 42).Select(build())
	second := newSelector(t, 42).Select(build())

	assert.Equal(t, first.Outcome, second.Outcome)
	assert.Equal(t, first.Record.Question, second.Record.Question)
}

func TestSelect_LowSampleOrderIsRandom(t *testing.T) {
	seen := map[string]bool{}
	for seed := int64(1); seed <= 64; seed++ {
		records := []record.Record{
			rec("a", 10, 1, 0),
			rec("b", 10, 1, 0),
			rec("c", 10, 1, 0),
		}
		res := newSelector(t, seed).Select(records)
		require.Equal(t, Selected, res.Outcome)
		seen[res.Record.Question] = true
	}

	assert.Greater(t, len(seen), 1)
}

func TestLess(t *testing.T) {
	weak := candidate{ratio: 0.2, presented: 10, correct: 2, last: 50}
	strong := candidate{ratio: 0.9, presented: 10, correct: 9, last: 10}

	assert.True(t, less(weak, strong))
	assert.False(t, less(strong, weak))

	// Оба с малым числом показов: решает случайный ключ
	a := candidate{ratio: 0, presented: 1, correct: 0, key: 0.9}
	b := candidate{ratio: 1, presented: 1, correct: 1, key: 0.1}
	assert.True(t, less(b, a))

	// Оба с малым числом верных ответов
	c := candidate{ratio: 0.1, presented: 10, correct: 1, key: 0.7}
	d := candidate{ratio: 0, presented: 10, correct: 0, key: 0.3}
	assert.True(t, less(d, c))
	assert.False(t, less(c, d))
}

func TestPick(t *testing.T) {
	s := newSelector(t, 1)

	tests := []struct {
		name    string
		ranked  []candidate
		outcome Outcome
		index   int
	}{
		{
			name: "слабый перцентиль - первый в рейтинге",
			ranked: []candidate{
				{index: 3, ratio: 0.1},
				{index: 0, ratio: 0.9},
			},
			outcome: Selected,
			index:   3,
		},
		{
			name: "поиск слабой записи после перцентиля",
			ranked: []candidate{
				{index: 0, ratio: 0.8},
				{index: 1, ratio: 0.9},
				{index: 2, ratio: 0.0},
				{index: 3, ratio: 1.0},
			},
			outcome: Selected,
			index:   2,
		},
		{
			name: "все выше порога",
			ranked: []candidate{
				{index: 5, ratio: 0.6},
				{index: 4, ratio: 0.7},
				{index: 3, ratio: 1.0},
			},
			outcome: Mastered,
			index:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, index := s.pick(tt.ranked)
			assert.Equal(t, tt.outcome, outcome)
			assert.Equal(t, tt.index, index)
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "selected", Selected.String())
	assert.Equal(t, "mastered", Mastered.String())
}
