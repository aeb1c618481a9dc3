package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"askme/internal/infrastructure/importer"
)

var importCfg = importer.DefaultConfig()

var importCmd = &cobra.Command{
	Use:   "import <файл>",
	Short: "Импортировать вопросы из файла",
	Long: `Добавляет в тему пары вопрос-ответ из файла Excel (.xlsx), CSV или TSV.

По умолчанию вопрос берется из столбца A, ответ из столбца B.
Строки с пустым вопросом или ответом пропускаются.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		importCfg.FilePath = args[0]

		added, skipped, err := app.Import(cfg.Topic, importCfg)
		if err != nil {
			return fmt.Errorf("ошибка импорта: %w", err)
		}

		fmt.Printf("Добавлено вопросов: %d\n", added)
		if skipped > 0 {
			fmt.Printf("Пропущено строк: %d\n", skipped)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importCfg.QuestionColumn, "question-column", importCfg.QuestionColumn, "столбец с вопросом")
	importCmd.Flags().StringVar(&importCfg.AnswerColumn, "answer-column", importCfg.AnswerColumn, "столбец с ответом")
	importCmd.Flags().StringVar(&importCfg.SheetName, "sheet", "", "лист Excel (по умолчанию активный)")
	importCmd.Flags().BoolVar(&importCfg.SkipHeader, "skip-header", false, "пропустить первую строку")
}
