package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"askme/internal/app/quiz"
)

var topicsFormat string

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Список тем",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(topicsFormat); err != nil {
			return err
		}

		infos, err := app.Topics()
		if err != nil {
			return fmt.Errorf("ошибка получения списка тем: %w", err)
		}

		if topicsFormat == formatJSON {
			return printJSON(infos)
		}
		return printTopics(infos)
	},
}

func printTopics(infos []quiz.TopicInfo) error {
	if len(infos) == 0 {
		fmt.Printf("Темы не найдены. Добавьте вопрос: askme add --topic <тема> <вопрос> <ответ>\n")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Тема\tВопросов\tСредняя доля\tСтатус\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t\n")

	for _, info := range infos {
		status := "Изучается"
		switch {
		case info.Error != "":
			status = "Ошибка: " + info.Error
		case info.Records == 0:
			status = "Пусто"
		case info.Mastered:
			status = "Усвоена"
		}

		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t\n", info.Name, info.Records, percent(info.Score), status)
	}

	return w.Flush()
}

func init() {
	topicsCmd.Flags().StringVar(&topicsFormat, "format", formatTable, "формат вывода (table, json)")
}
