package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"
)

const (
	formatSimple = "simple"
	formatTable  = "table"
	formatJSON   = "json"

	dateLayout = "2006-01-02 15:04"
)

func validateFormat(format string) error {
	switch format {
	case formatSimple, formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("неизвестный формат вывода: %q", format)
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

func truncate(s string, length int) string {
	if utf8.RuneCountInString(s) <= length {
		return s
	}
	runes := []rune(s)
	return string(runes[:length-3]) + "..."
}
