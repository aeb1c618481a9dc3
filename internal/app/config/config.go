package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	FrontendTerminal = "terminal"
	FrontendZenity   = "zenity"
)

const (
	envPrefix              = "ASKME"
	defaultEnv             = EnvProd
	defaultHomeDir         = ".askme"
	defaultFrontend        = FrontendTerminal
	defaultIntervalSeconds = 5
)

type Config struct {
	Env          string        `mapstructure:"app_env"`
	HomeDir      string        `mapstructure:"home"`
	Topic        string        `mapstructure:"topic"`
	NumQuestions int           `mapstructure:"num_questions"`
	Force        bool          `mapstructure:"force"`
	Interval     time.Duration `mapstructure:"interval_seconds"`
	Frontend     string        `mapstructure:"frontend"`
}

// Load загружает конфигурацию из .env, окружения (ASKME_*) и файла конфигурации.
// Некорректные числовые значения возвращают ошибку, а не подменяются нулем.
func Load() (*Config, error) {
	loadDotEnv()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app_env", defaultEnv)
	viper.SetDefault("home", "")
	viper.SetDefault("topic", "")
	viper.SetDefault("num_questions", 0)
	viper.SetDefault("force", false)
	viper.SetDefault("interval_seconds", defaultIntervalSeconds)
	viper.SetDefault("frontend", defaultFrontend)

	numQuestions, err := cast.ToIntE(viper.Get("num_questions"))
	if err != nil {
		return nil, fmt.Errorf("num_questions: %w", err)
	}

	interval, err := cast.ToIntE(viper.Get("interval_seconds"))
	if err != nil {
		return nil, fmt.Errorf("interval_seconds: %w", err)
	}

	force, err := cast.ToBoolE(viper.Get("force"))
	if err != nil {
		return nil, fmt.Errorf("force: %w", err)
	}

	homeDir := viper.GetString("home")
	if homeDir == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			userHome = "."
		}
		homeDir = filepath.Join(userHome, defaultHomeDir)
	}

	config := &Config{
		Env:          viper.GetString("app_env"),
		HomeDir:      homeDir,
		Topic:        viper.GetString("topic"),
		NumQuestions: numQuestions,
		Force:        force,
		Interval:     time.Duration(interval) * time.Second,
		Frontend:     viper.GetString("frontend"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}

	return config, nil
}

func loadDotEnv() {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}
}

// Validate проверяет значения, в том числе переопределенные флагами
func (c *Config) Validate() error {
	if c.HomeDir == "" {
		return fmt.Errorf("home не может быть пустым")
	}
	if c.NumQuestions < 0 {
		return fmt.Errorf("num_questions не может быть отрицательным: %d", c.NumQuestions)
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval не может быть отрицательным: %s", c.Interval)
	}
	switch c.Frontend {
	case FrontendTerminal, FrontendZenity:
	default:
		return fmt.Errorf("неизвестный интерфейс: %q", c.Frontend)
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}
