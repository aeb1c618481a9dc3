package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"askme/internal/domain/grade"
)

var (
	gradesFormat string
	gradesLimit  int
)

var gradesCmd = &cobra.Command{
	Use:   "grades",
	Short: "История оценок темы",
	Long: `Выводит итоги последних сеансов по теме и общую статистику.

Поддерживается ограничение количества сеансов через флаг --limit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(gradesFormat); err != nil {
			return err
		}

		summary, err := app.GradeSummary(cmd.Context(), cfg.Topic)
		if errors.Is(err, grade.ErrNoHistory) {
			fmt.Printf("По теме %q еще не было сеансов\n", cfg.Topic)
			return nil
		}
		if err != nil {
			return fmt.Errorf("ошибка получения статистики: %w", err)
		}

		history, err := app.History(cmd.Context(), cfg.Topic, gradesLimit)
		if err != nil {
			return fmt.Errorf("ошибка получения истории: %w", err)
		}

		if gradesFormat == formatJSON {
			return printJSON(struct {
				Summary *grade.Summary `json:"summary"`
				History []grade.Grade  `json:"history"`
			}{summary, history})
		}
		return printGrades(summary, history)
	},
}

func printGrades(summary *grade.Summary, history []grade.Grade) error {
	fmt.Printf("Тема: %s\n", summary.Topic)
	fmt.Printf("Сеансов: %d | Вопросов: %d | Верных: %d (%s) | Последний: %s\n\n",
		summary.Sessions,
		summary.Asked,
		summary.Correct,
		percent(summary.Score()),
		summary.LastSession.Format(dateLayout),
	)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Сеанс\tНачат\tВопросов\tВерных\tОценка\tДобавлено\tУсвоена\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t---\t---\t\n")

	for _, g := range history {
		mastered := "нет"
		if g.Mastered {
			mastered = "да"
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%d\t%s\t\n",
			g.SessionID,
			g.StartedAt.Format(dateLayout),
			g.Asked,
			g.Correct,
			percent(g.Score()),
			g.Added,
			mastered,
		)
	}

	return w.Flush()
}

func init() {
	gradesCmd.Flags().StringVar(&gradesFormat, "format", formatTable, "формат вывода (table, json)")
	gradesCmd.Flags().IntVar(&gradesLimit, "limit", 20, "ограничение количества сеансов")
}
