package record

import (
	"strconv"
	"strings"
	"time"
)

// Delimiter разделяет поля записи в строке файла
const Delimiter = "\t"

// Codec переводит строку файла темы в Record и обратно
type Codec struct {
	now func() time.Time
}

// NewCodec создает кодек. now используется для заполнения отсутствующих временных меток.
func NewCodec(now func() time.Time) *Codec {
	if now == nil {
		now = time.Now
	}
	return &Codec{now: now}
}

// Decode разбирает строку и дополняет отсутствующие поля значениями по умолчанию.
// Числовые поля, которые не удалось разобрать, считаются нулем.
func (c *Codec) Decode(line string) (Record, error) {
	rec, _, err := c.decode(line)
	return rec, err
}

// decode дополнительно возвращает позиции полей, которые не удалось разобрать
func (c *Codec) decode(line string) (Record, []int, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, Delimiter)
	if len(fields) <= FieldAnswer || fields[FieldQuestion] == "" {
		return Record{}, nil, ErrMissingField
	}

	fields = c.Backfill(fields, FieldCount)

	var malformed []int
	timestamp := func(pos int) int64 {
		v, err := strconv.ParseInt(strings.TrimSpace(fields[pos]), 10, 64)
		if err != nil {
			malformed = append(malformed, pos)
			return 0
		}
		return v
	}
	counter := func(pos int) int {
		v, err := strconv.ParseUint(strings.TrimSpace(fields[pos]), 10, 31)
		if err != nil {
			malformed = append(malformed, pos)
			return 0
		}
		return int(v)
	}

	rec := Record{
		Question:          fields[FieldQuestion],
		Answer:            fields[FieldAnswer],
		CreatedAt:         timestamp(FieldCreatedAt),
		LastPresentedAt:   timestamp(FieldLastPresentedAt),
		PresentationCount: counter(FieldPresentationCount),
		CorrectCount:      counter(FieldCorrectCount),
	}

	return rec, malformed, nil
}

// Encode всегда выводит все поля записи в каноническом порядке
func (c *Codec) Encode(r Record) string {
	fields := [FieldCount]string{
		FieldQuestion:          r.Question,
		FieldAnswer:            r.Answer,
		FieldCreatedAt:         strconv.FormatInt(r.CreatedAt, 10),
		FieldLastPresentedAt:   strconv.FormatInt(r.LastPresentedAt, 10),
		FieldPresentationCount: strconv.Itoa(r.PresentationCount),
		FieldCorrectCount:      strconv.Itoa(r.CorrectCount),
	}
	return strings.Join(fields[:], Delimiter)
}

// Backfill возвращает копию fields, дополненную значениями по умолчанию до target полей.
// Лишние поля сохраняются как есть.
func (c *Codec) Backfill(fields []string, target int) []string {
	size := max(len(fields), target)
	out := make([]string, len(fields), size)
	copy(out, fields)

	now := strconv.FormatInt(c.now().Unix(), 10)
	for pos := len(out); pos < target; pos++ {
		out = append(out, defaultField(pos, now))
	}
	return out
}

func defaultField(pos int, now string) string {
	switch pos {
	case FieldCreatedAt, FieldLastPresentedAt:
		return now
	case FieldPresentationCount:
		return strconv.Itoa(DefaultPresentationCount)
	case FieldCorrectCount:
		return strconv.Itoa(DefaultCorrectCount)
	default:
		return ""
	}
}
