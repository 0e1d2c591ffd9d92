// Package config provides Viper-based hierarchical configuration management.
// Values are resolved from defaults, then config.yaml, then PLANNERFIN_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"fjacquet/plannerfin/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "PLANNERFIN"

// Data backends.
const (
	BackendFiles    = "files"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Backend          string `mapstructure:"backend" yaml:"backend"`
		DSN              string `mapstructure:"dsn" yaml:"-"` // May carry credentials
		UserID           string `mapstructure:"user_id" yaml:"user_id"`
		Directory        string `mapstructure:"directory" yaml:"directory"`
		TransactionsFile string `mapstructure:"transactions_file" yaml:"transactions_file"`
		CategoriesFile   string `mapstructure:"categories_file" yaml:"categories_file"`
		ProfileFile      string `mapstructure:"profile_file" yaml:"profile_file"`
		BudgetsFile      string `mapstructure:"budgets_file" yaml:"budgets_file"`
		GoalsFile        string `mapstructure:"goals_file" yaml:"goals_file"`
	} `mapstructure:"data" yaml:"data"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Display struct {
		CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
	} `mapstructure:"display" yaml:"display"`

	Consultor struct {
		UseProfileOnDashboard bool   `mapstructure:"use_profile_on_dashboard" yaml:"use_profile_on_dashboard"`
		BudgetSuggestionMode  string `mapstructure:"budget_suggestion_mode" yaml:"budget_suggestion_mode"`
	} `mapstructure:"consultor" yaml:"consultor"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load reads the configuration. An explicit configFile replaces the search
// of the standard locations and must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.plannerfin")
		v.AddConfigPath(".plannerfin")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless explicit)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key also comes from the unprefixed variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY", EnvPrefix+"_AI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY environment variable: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Data defaults
	v.SetDefault("data.backend", BackendFiles)
	v.SetDefault("data.dsn", "")
	v.SetDefault("data.user_id", "local")
	v.SetDefault("data.directory", "")
	v.SetDefault("data.transactions_file", "transactions.csv")
	v.SetDefault("data.categories_file", "categories.yaml")
	v.SetDefault("data.profile_file", "settings.yaml")
	v.SetDefault("data.budgets_file", "budgets.yaml")
	v.SetDefault("data.goals_file", "goals.yaml")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Display defaults
	v.SetDefault("display.currency_symbol", "R$")

	// Consultor defaults
	v.SetDefault("consultor.use_profile_on_dashboard", true)
	v.SetDefault("consultor.budget_suggestion_mode", "")

	// AI defaults
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.api_key", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate data backend
	switch config.Data.Backend {
	case BackendFiles:
	case BackendSQLite, BackendPostgres:
		if config.Data.DSN == "" {
			return fmt.Errorf("data.dsn required for the %s backend", config.Data.Backend)
		}
		if config.Data.UserID == "" {
			return fmt.Errorf("data.user_id required for the %s backend", config.Data.Backend)
		}
	default:
		return fmt.Errorf("invalid data backend: %s (must be '%s', '%s' or '%s')",
			config.Data.Backend, BackendFiles, BackendSQLite, BackendPostgres)
	}

	// Validate CSV delimiter
	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	// An empty mode defers to the user preferences
	if config.Consultor.BudgetSuggestionMode != "" {
		if _, err := models.ParseSuggestionMode(config.Consultor.BudgetSuggestionMode); err != nil {
			return err
		}
	}

	// Validate AI configuration
	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// SuggestionMode returns the configured budget suggestion mode, or fallback
// when the configuration leaves it to the user preferences.
func (c *Config) SuggestionMode(fallback models.SuggestionMode) models.SuggestionMode {
	if c.Consultor.BudgetSuggestionMode == "" {
		return fallback
	}
	mode, err := models.ParseSuggestionMode(c.Consultor.BudgetSuggestionMode)
	if err != nil {
		return fallback
	}
	return mode
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
