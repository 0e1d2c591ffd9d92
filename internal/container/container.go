// Package container provides dependency injection for the plannerfin application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"
	"time"

	"fjacquet/plannerfin/internal/config"
	"fjacquet/plannerfin/internal/consultor"
	"fjacquet/plannerfin/internal/logging"
	"fjacquet/plannerfin/internal/narrator"
	"fjacquet/plannerfin/internal/report"
	"fjacquet/plannerfin/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     store.DataStore
	aiClient  io.Closer
	narrator  *narrator.Narrator
	service   *consultor.Service
	generator *report.Generator
}

// NewContainer creates and wires all application dependencies from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))

	ds, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	var aiClient io.Closer
	var n *narrator.Narrator
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		client, err := narrator.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model, logger)
		if err != nil {
			_ = closeStore(ds)
			return nil, fmt.Errorf("failed to create AI client: %w", err)
		}
		aiClient = client
		n = narrator.New(client, time.Duration(cfg.AI.TimeoutSeconds)*time.Second, logger)
		logger.Info("AI narration enabled", logging.Field{Key: "model", Value: cfg.AI.Model})
	} else {
		logger.Debug("AI narration disabled")
	}

	c := newContainer(cfg, ds, n, logger)
	c.aiClient = aiClient
	return c, nil
}

// openStore builds the data store selected by data.backend.
func openStore(cfg *config.Config, logger logging.Logger) (store.DataStore, error) {
	switch cfg.Data.Backend {
	case config.BackendSQLite, config.BackendPostgres:
		ds, err := store.OpenSQLStore(context.Background(), store.SQLOptions{
			Driver:    cfg.Data.Backend,
			DSN:       cfg.Data.DSN,
			UserID:    cfg.Data.UserID,
			Delimiter: cfg.Delimiter(),
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s store: %w", cfg.Data.Backend, err)
		}
		return ds, nil
	default:
		return store.NewFileStore(store.Paths{
			Directory:    cfg.Data.Directory,
			Transactions: cfg.Data.TransactionsFile,
			Categories:   cfg.Data.CategoriesFile,
			Settings:     cfg.Data.ProfileFile,
			Budgets:      cfg.Data.BudgetsFile,
			Goals:        cfg.Data.GoalsFile,
		}, cfg.Delimiter(), logger), nil
	}
}

func closeStore(ds store.DataStore) error {
	if closer, ok := ds.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// NewContainerWithStore wires the application around an existing store and
// narrator. It is used by tests and by callers that bring their own storage.
func NewContainerWithStore(cfg *config.Config, ds store.DataStore, n *narrator.Narrator, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if ds == nil {
		return nil, fmt.Errorf("data store cannot be nil")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}
	return newContainer(cfg, ds, n, logger), nil
}

func newContainer(cfg *config.Config, ds store.DataStore, n *narrator.Narrator, logger logging.Logger) *Container {
	service := consultor.NewService(ds, n, consultor.Options{
		UseProfile:     cfg.Consultor.UseProfileOnDashboard,
		SuggestionMode: cfg.SuggestionMode(""),
	}, logger)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "ai_enabled", Value: n.Enabled()})

	return &Container{
		logger:    logger,
		config:    cfg,
		store:     ds,
		narrator:  n,
		service:   service,
		generator: report.NewGenerator(logger, cfg.Display.CurrencySymbol),
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's data store.
func (c *Container) GetStore() store.DataStore {
	return c.store
}

// GetNarrator returns the AI narrator. Returns nil if AI is not enabled.
func (c *Container) GetNarrator() *narrator.Narrator {
	return c.narrator
}

// GetService returns the consultor service used by the commands.
func (c *Container) GetService() *consultor.Service {
	return c.service
}

// GetGenerator returns the report generator.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// Close releases the AI client and the data store connection, if any.
// Both are always closed; the first failure is returned.
func (c *Container) Close() error {
	var firstErr error
	if c.aiClient != nil {
		if err := c.aiClient.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close AI client")
			firstErr = fmt.Errorf("failed to close AI client: %w", err)
		}
	}
	if err := closeStore(c.store); err != nil {
		c.logger.WithError(err).Warn("Failed to close data store")
		if firstErr == nil {
			firstErr = fmt.Errorf("failed to close data store: %w", err)
		}
	}
	if firstErr != nil {
		return firstErr
	}
	c.logger.Debug("Container closed")
	return nil
}
