package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported import format")

// Config defines the import configuration
type Config struct {
	FilePath       string // Path to the Excel, CSV or TSV file
	QuestionColumn string // Column with the question
	AnswerColumn   string // Column with the answer
	SheetName      string // Sheet to import; empty means the active sheet
	SkipHeader     bool   // Skip the first row
}

// DefaultConfig returns the default import configuration
func DefaultConfig() Config {
	return Config{
		QuestionColumn: "A",
		AnswerColumn:   "B",
	}
}

// Pair - вопрос и ответ из одной строки файла
type Pair struct {
	Row      int
	Question string
	Answer   string
}

// Read reads question/answer pairs; the format is chosen by file extension.
// Rows with an empty question or answer are skipped.
func Read(cfg Config) ([]Pair, error) {
	qCol, err := excelize.ColumnNameToNumber(cfg.QuestionColumn)
	if err != nil {
		return nil, fmt.Errorf("question column: %w", err)
	}
	aCol, err := excelize.ColumnNameToNumber(cfg.AnswerColumn)
	if err != nil {
		return nil, fmt.Errorf("answer column: %w", err)
	}

	var rows [][]string
	switch ext := strings.ToLower(filepath.Ext(cfg.FilePath)); ext {
	case ".xlsx", ".xlsm":
		rows, err = readExcel(cfg)
	case ".csv":
		rows, err = readDelimited(cfg.FilePath, ',')
	case ".tsv", ".txt":
		rows, err = readDelimited(cfg.FilePath, '\t')
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	return toPairs(rows, qCol-1, aCol-1, cfg.SkipHeader), nil
}

// readExcel reads all rows from an Excel sheet
func readExcel(cfg Config) ([][]string, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// readDelimited reads all rows from a CSV-like file
func readDelimited(path string, comma rune) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func toPairs(rows [][]string, qIdx, aIdx int, skipHeader bool) []Pair {
	var pairs []Pair
	for i, row := range rows {
		if i == 0 && skipHeader {
			continue
		}
		question := strings.TrimSpace(cell(row, qIdx))
		answer := strings.TrimSpace(cell(row, aIdx))
		if question == "" || answer == "" {
			continue
		}
		pairs = append(pairs, Pair{Row: i + 1, Question: question, Answer: answer})
	}
	return pairs
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
