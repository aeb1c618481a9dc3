package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <вопрос> <ответ>",
	Short: "Добавить вопрос в тему",
	Long: `Добавляет вопрос с ответом в тему, заданную флагом --topic.
Если файла темы нет, он будет создан. Вопрос и ответ не могут быть пустыми
и не могут содержать табуляцию и перевод строки.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.AddQuestion(cfg.Topic, args[0], args[1]); err != nil {
			return err
		}

		fmt.Printf("Вопрос добавлен в тему %q\n", cfg.Topic)
		return nil
	},
}
