package topics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	topicsDir = "topics"
	gradesDir = "grades"
	gradesDB  = "grades.db"
	dirPerm   = 0o700
)

var (
	ErrInvalidTopic = errors.New("invalid topic name")
	ErrNoTopic      = errors.New("topic is not set")
)

// Layout описывает каталог пользователя: topics/ с файлом на тему и grades/ с историей оценок
type Layout struct {
	base string
}

func New(base string) *Layout {
	return &Layout{base: base}
}

func (l *Layout) TopicsDir() string {
	return filepath.Join(l.base, topicsDir)
}

func (l *Layout) GradesDir() string {
	return filepath.Join(l.base, gradesDir)
}

// GradesDB возвращает путь к базе истории оценок
func (l *Layout) GradesDB() string {
	return filepath.Join(l.GradesDir(), gradesDB)
}

// Ensure создает недостающие каталоги
func (l *Layout) Ensure() error {
	for _, dir := range []string{l.TopicsDir(), l.GradesDir()} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// TopicPath возвращает путь к файлу темы. Имя не может содержать разделители пути.
func (l *Layout) TopicPath(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(l.TopicsDir(), name), nil
}

// List возвращает имена тем в алфавитном порядке. Скрытые файлы пропускаются.
func (l *Layout) List() ([]string, error) {
	entries, err := os.ReadDir(l.TopicsDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read topics: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func ValidateName(name string) error {
	switch {
	case name == "":
		return ErrNoTopic
	case name == "." || name == "..",
		strings.HasPrefix(name, "."),
		strings.ContainsAny(name, `/\`),
		strings.ContainsRune(name, os.PathSeparator):
		return fmt.Errorf("%w: %q", ErrInvalidTopic, name)
	}
	return nil
}
