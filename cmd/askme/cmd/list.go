package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"askme/internal/domain/record"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Список вопросов темы",
	Long: `Выводит вопросы темы со статистикой ответов в порядке файла.

Форматы вывода: simple, table, json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(listFormat); err != nil {
			return err
		}

		records, err := app.Records(cfg.Topic)
		if err != nil {
			return fmt.Errorf("ошибка чтения темы: %w", err)
		}

		switch listFormat {
		case formatJSON:
			return printJSON(records)
		case formatTable:
			return printRecordsTable(records)
		default:
			return printRecordsSimple(records)
		}
	},
}

func printRecordsSimple(records []record.Record) error {
	if len(records) == 0 {
		fmt.Println("Вопросы не найдены")
		return nil
	}

	fmt.Printf("Найдено вопросов: %d\n\n", len(records))

	for i, rec := range records {
		fmt.Printf("%d. %s\n", i+1, rec.Question)
		fmt.Printf("   Ответ: %s | Показов: %d | Верных: %d (%s) | Показан: %s\n",
			rec.Answer,
			rec.PresentationCount,
			rec.CorrectCount,
			percent(rec.Ratio()),
			rec.LastPresented().Format(dateLayout),
		)
	}

	return nil
}

func printRecordsTable(records []record.Record) error {
	if len(records) == 0 {
		fmt.Println("Вопросы не найдены")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "#\tВопрос\tОтвет\tПоказов\tВерных\tДоля\tСоздан\tПоказан\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t---\t---\t---\t\n")

	for i, rec := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t\n",
			i+1,
			truncate(rec.Question, 40),
			truncate(rec.Answer, 20),
			rec.PresentationCount,
			rec.CorrectCount,
			percent(rec.Ratio()),
			rec.Created().Format(dateLayout),
			rec.LastPresented().Format(dateLayout),
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nВсего вопросов: %d\n", len(records))
	return nil
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", formatSimple, "формат вывода (simple, table, json)")
}
