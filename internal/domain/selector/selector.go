// Package selector выбирает следующий вопрос по истории ответов.
//
// Предпочтение отдается записям, на которые чаще отвечали неверно и которые
// дольше не показывались. Пары записей с малым числом наблюдений
// упорядочиваются случайно.
package selector

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"askme/internal/domain/record"
)

const (
	DefaultMasteryThreshold = 0.6
	DefaultPercentile       = 10

	// minSamples - меньше наблюдений не дают доверять доле верных ответов
	minSamples = 2
)

// Outcome - результат выбора
type Outcome int

const (
	// Empty - записей нет, спрашивать нечего
	Empty Outcome = iota
	// Selected - выбрана запись для показа
	Selected
	// Mastered - тема усвоена, дальнейшие вопросы не нужны
	Mastered
)

func (o Outcome) String() string {
	switch o {
	case Empty:
		return "empty"
	case Selected:
		return "selected"
	case Mastered:
		return "mastered"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result - итог выбора.
// Record указывает на элемент переданного среза. При Mastered это самая слабая
// запись рейтинга, при Empty - nil.
type Result struct {
	Outcome Outcome
	Record  *record.Record
}

// Config настраивает Selector. Нулевые значения заменяются значениями по умолчанию.
type Config struct {
	MasteryThreshold float64    // zero → 0.6
	Percentile       int        // zero → 10
	Rand             *rand.Rand // nil → источник, засеянный временем
}

// Selector ранжирует записи и выбирает следующую
type Selector struct {
	threshold  float64
	percentile int
	rng        *rand.Rand
}

// New создает Selector из конфигурации
func New(cfg Config) (*Selector, error) {
	threshold := cfg.MasteryThreshold
	if threshold == 0 {
		threshold = DefaultMasteryThreshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("selector: mastery threshold %f out of range (0, 1]", threshold)
	}

	percentile := cfg.Percentile
	if percentile == 0 {
		percentile = DefaultPercentile
	}
	if percentile < 0 || percentile >= 100 {
		return nil, fmt.Errorf("selector: percentile %d out of range [1, 99]", percentile)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Selector{
		threshold:  threshold,
		percentile: percentile,
		rng:        rng,
	}, nil
}

type candidate struct {
	index     int
	ratio     float64
	presented int
	correct   int
	last      int64
	key       float64
}

// Select выбирает запись для показа.
// Срез сортируется на месте по времени последнего показа; этот порядок попадет в файл при сохранении.
func (s *Selector) Select(records []record.Record) Result {
	switch len(records) {
	case 0:
		return Result{Outcome: Empty}
	case 1:
		return Result{Outcome: Selected, Record: &records[0]}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].LastPresentedAt < records[j].LastPresentedAt
	})

	outcome, index := s.pick(s.rank(records))
	return Result{Outcome: outcome, Record: &records[index]}
}

// pick проверяет усвоение по доле верных ответов на позиции перцентиля.
// Возвращает исход и индекс записи в исходном срезе.
func (s *Selector) pick(ranked []candidate) (Outcome, int) {
	pos := len(ranked) * s.percentile / 100
	if ranked[pos].ratio < s.threshold {
		return Selected, ranked[0].index
	}

	for _, c := range ranked[pos:] {
		if c.ratio < s.threshold {
			return Selected, c.index
		}
	}
	return Mastered, ranked[0].index
}

// rank возвращает кандидатов от самых слабых к самым сильным
func (s *Selector) rank(records []record.Record) []candidate {
	ranked := make([]candidate, len(records))
	for i, rec := range records {
		ranked[i] = candidate{
			index:     i,
			ratio:     rec.Ratio(),
			presented: rec.PresentationCount,
			correct:   rec.CorrectCount,
			last:      rec.LastPresentedAt,
			key:       s.rng.Float64(),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j])
	})

	return ranked
}

func less(a, b candidate) bool {
	if lowSample(a, b) {
		return a.key < b.key
	}
	if a.ratio != b.ratio {
		return a.ratio < b.ratio
	}
	return a.last < b.last
}

func lowSample(a, b candidate) bool {
	return (a.presented < minSamples && b.presented < minSamples) ||
		(a.correct < minSamples && b.correct < minSamples)
}
