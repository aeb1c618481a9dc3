// cmd/askme/cmd/root.go
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"askme/internal/app/config"
	"askme/internal/app/quiz"
	"askme/internal/utils/logger"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
	app     *quiz.App
	debug   bool

	homeDir      string
	topic        string
	numQuestions int
	force        bool
	interval     int
	frontend     string
)

var rootCmd = &cobra.Command{
	Use:   "askme",
	Short: "askme - интервальное повторение вопросов по темам",
	Long: `askme задает вопросы выбранной темы, пока тема не будет усвоена.

Чаще задаются вопросы, на которые вы отвечали неверно, и вопросы, которые
давно не показывались. Тема считается усвоенной, когда даже на слабые
вопросы вы отвечаете верно хотя бы в 60% случаев.

Темы хранятся в файлах <home>/topics/<тема>, по одному вопросу в строке:
вопрос<TAB>ответ[<TAB>создан<TAB>показан<TAB>показов<TAB>верных]`,
	Args:               cobra.NoArgs,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	RunE:               runQuiz,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Флаги командной строки важнее конфигурации
	applyFlags(cmd)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("ошибка конфигурации: %w", err)
	}

	log = logger.New(cfg.Env)
	if !cfg.IsProd() {
		log.Debug("Конфигурация загружена",
			"home", cfg.HomeDir,
			"topic", cfg.Topic,
			"num_questions", cfg.NumQuestions,
			"interval", cfg.Interval.String(),
			"frontend", cfg.Frontend,
		)
	}

	app, err = quiz.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Ищем конфиг в стандартных местах
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".askme"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// Конфиг не найден, используем значения по умолчанию
	}

	return config.Load()
}

func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	if debug {
		cfg.Env = config.EnvLocal
	}
	if flags.Changed("home") {
		cfg.HomeDir = homeDir
	}
	if flags.Changed("topic") {
		cfg.Topic = topic
	}
	if flags.Changed("num-questions") {
		cfg.NumQuestions = numQuestions
	}
	if flags.Changed("force") {
		cfg.Force = force
	}
	if flags.Changed("interval") {
		cfg.Interval = time.Duration(interval) * time.Second
	}
	if flags.Changed("frontend") {
		cfg.Frontend = frontend
	}
}

func runQuiz(cmd *cobra.Command, _ []string) error {
	session, err := app.Run(cmd.Context())
	if session != nil && session.Asked > 0 {
		fmt.Printf("\nВопросов: %d, верных ответов: %d (%.0f%%)\n",
			session.Asked, session.Correct, session.Score()*100)
		if session.Added > 0 {
			fmt.Printf("Добавлено вопросов: %d\n", session.Added)
		}
	}
	return err
}

func init() {
	// Глобальные флаги
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "каталог с темами и оценками (по умолчанию ~/.askme)")
	rootCmd.PersistentFlags().StringVarP(&topic, "topic", "t", "", "тема")

	rootCmd.Flags().IntVarP(&numQuestions, "num-questions", "n", 0, "сколько вопросов задать (0 - без ограничения)")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "продолжать после усвоения темы")
	rootCmd.Flags().IntVarP(&interval, "interval", "i", 5, "пауза между вопросами в секундах")
	rootCmd.Flags().StringVar(&frontend, "frontend", config.FrontendTerminal, "интерфейс (terminal, zenity)")

	rootCmd.AddCommand(addCmd, topicsCmd, listCmd, gradesCmd, importCmd)
}
