package record

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/moby/sys/atomicwriter"
	"golang.org/x/exp/slog"
)

const (
	filePerm      = 0o600
	maxLineLength = 1024 * 1024
)

// Store - упорядоченный набор записей одной темы, связанный с файлом
type Store struct {
	path    string
	codec   *Codec
	now     func() time.Time
	log     *slog.Logger
	records []Record
}

// Option настраивает Store
type Option func(*Store)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger задает логгер хранилища
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStore создает пустое хранилище для файла path. Файл не читается.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		now:  time.Now,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.codec = NewCodec(s.now)
	s.log = s.log.With("component", "record_store")
	return s
}

// Load читает файл темы. При любой ошибке частично прочитанные записи отбрасываются.
func Load(path string, opts ...Option) (*Store, error) {
	s := NewStore(path, opts...)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open topic file: %w", err)
	}
	defer f.Close()

	records, err := s.read(f)
	if err != nil {
		return nil, err
	}
	s.records = records

	s.log.Debug("topic loaded", "path", path, "records", len(records))
	return s, nil
}

func (s *Store) read(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var records []Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, malformed, err := s.codec.decode(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", s.path, lineNo, err)
		}
		if len(malformed) > 0 {
			// Битые числовые поля считаются нулем и искажают подсчет долей
			s.log.Debug("malformed numeric fields replaced with zero",
				"path", s.path, "line", lineNo, "fields", malformed)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read topic file: %w", err)
	}

	return records, nil
}

// Save записывает все записи в текущем порядке. Файл заменяется атомарно,
// поэтому неудачное сохранение не портит предыдущую версию.
func (s *Store) Save() error {
	var buf bytes.Buffer
	for _, rec := range s.records {
		buf.WriteString(s.codec.Encode(rec))
		buf.WriteByte('\n')
	}

	if err := atomicwriter.WriteFile(s.path, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("save topic file: %w", err)
	}

	s.log.Debug("topic saved", "path", s.path, "records", len(s.records))
	return nil
}

// Append добавляет новую запись со статистикой по умолчанию.
// При ошибке набор записей не меняется.
func (s *Store) Append(question, answer string) error {
	if question == "" || answer == "" {
		return ErrEmptyField
	}
	if strings.ContainsAny(question, "\t\r\n") || strings.ContainsAny(answer, "\t\r\n") {
		return ErrInvalidField
	}

	now := s.now().Unix()
	s.records = append(s.records, Record{
		Question:          question,
		Answer:            answer,
		CreatedAt:         now,
		LastPresentedAt:   now,
		PresentationCount: DefaultPresentationCount,
		CorrectCount:      DefaultCorrectCount,
	})

	return nil
}

// FindAll возвращает индексы всех записей с точно совпадающим вопросом
func (s *Store) FindAll(question string) []int {
	var found []int
	for i := range s.records {
		if s.records[i].Question == question {
			found = append(found, i)
		}
	}
	return found
}

// IncrementPresentation отмечает показ у всех записей с этим вопросом.
// Возвращает число измененных записей.
func (s *Store) IncrementPresentation(question string) int {
	now := s.now().Unix()
	found := s.FindAll(question)
	for _, i := range found {
		s.records[i].LastPresentedAt = now
		s.records[i].PresentationCount++
	}
	return len(found)
}

// IncrementCorrect отмечает верный ответ у всех записей с этим вопросом
func (s *Store) IncrementCorrect(question string) int {
	found := s.FindAll(question)
	for _, i := range found {
		s.records[i].CorrectCount++
	}
	return len(found)
}

// Records возвращает сами записи, а не копию: сортировка среза меняет порядок сохранения.
func (s *Store) Records() []Record {
	return s.records
}

// Len возвращает число записей
func (s *Store) Len() int {
	return len(s.records)
}

// Path возвращает путь к файлу темы
func (s *Store) Path() string {
	return s.path
}
