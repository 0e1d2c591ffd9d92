// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"
	"time"

	"fjacquet/plannerfin/internal/config"
	"fjacquet/plannerfin/internal/container"
	"fjacquet/plannerfin/internal/logging"
	"fjacquet/plannerfin/internal/models"
	"fjacquet/plannerfin/internal/validation"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	Month        string
	Transactions string
	Categories   string
	Profile      string
	Format       string
	ConfigFile   string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.NewLogrusAdapter("info", "text")

	// AppContainer holds the wired dependencies once the root command ran.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "plannerfin",
		Short: "A CLI tool to analyze your monthly finances and plan budgets, debts and goals.",
		Long: `plannerfin reads your exported transactions, categories and financial profile
and turns them into a month analysis with a health score, alerts, an action plan,
a debt payoff plan, budget suggestions and savings goal progress.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to plannerfin!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to release resources")
			}
		},
	}

	// SharedFlags holds the values of the persistent flags
	SharedFlags = CommonFlags{Format: validation.FormatText}

	initOnce sync.Once
)

// Init initializes the root command and all flags
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVarP(&SharedFlags.Month, "month", "m", "", "Month to analyze as YYYY-MM (default: current month)")
		flags.StringVarP(&SharedFlags.Transactions, "transactions", "t", "", "Transactions CSV file (overrides data.transactions_file)")
		flags.StringVarP(&SharedFlags.Categories, "categories", "c", "", "Categories YAML file (overrides data.categories_file)")
		flags.StringVarP(&SharedFlags.Profile, "profile", "p", "", "Profile and preferences YAML file (overrides data.profile_file)")
		flags.StringVarP(&SharedFlags.Format, "format", "f", validation.FormatText, "Output format: text or json")
		flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: $HOME/.plannerfin/config.yaml)")
	})
}

// initialize loads .env and the configuration, then wires the container.
// A container set beforehand with SetContainer is kept.
func initialize(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(SharedFlags.Format); err != nil {
		return err
	}
	if AppContainer != nil {
		return nil
	}

	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	cfg, err := config.Load(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	ApplyFlags(cfg, SharedFlags)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	SetContainer(c)
	return nil
}

// ApplyFlags copies the file flags that were set onto cfg.
func ApplyFlags(cfg *config.Config, flags CommonFlags) {
	if flags.Transactions != "" {
		cfg.Data.TransactionsFile = flags.Transactions
	}
	if flags.Categories != "" {
		cfg.Data.CategoriesFile = flags.Categories
	}
	if flags.Profile != "" {
		cfg.Data.ProfileFile = flags.Profile
	}
}

// SetContainer installs c as the application container and adopts its logger.
func SetContainer(c *container.Container) {
	AppContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}

// GetContainer returns the application container.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return AppContainer, nil
}

// ResolveMonth parses the month flag, defaulting to the month of now.
func ResolveMonth(flag string, now time.Time) (models.MonthKey, error) {
	if flag == "" {
		return models.MonthKeyOf(now), nil
	}
	month, err := models.ParseMonthKey(flag)
	if err != nil {
		return "", fmt.Errorf("invalid --month '%s': expected YYYY-MM", flag)
	}
	return month, nil
}

// Month returns the month selected on the command line.
func Month() (models.MonthKey, error) {
	return ResolveMonth(SharedFlags.Month, time.Now())
}
