package container

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/plannerfin/internal/config"
	"fjacquet/plannerfin/internal/logging"
	"fjacquet/plannerfin/internal/narrator"
	"fjacquet/plannerfin/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ";"
	cfg.Display.CurrencySymbol = "R$"
	cfg.Consultor.UseProfileOnDashboard = true
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "valid config without AI",
			config: testConfig(),
		},
		{
			name: "AI enabled without key stays disabled",
			config: func() *config.Config {
				cfg := testConfig()
				cfg.AI.Enabled = true
				return cfg
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.Equal(t, tt.config, c.GetConfig())
			assert.NotNil(t, c.GetService())
			assert.NotNil(t, c.GetGenerator())
			assert.Nil(t, c.GetNarrator())
			assert.False(t, c.GetNarrator().Enabled())
			assert.NoError(t, c.Close())
		})
	}
}

func TestNewContainer_StorePaths(t *testing.T) {
	cfg := testConfig()
	cfg.Data.Directory = "/srv/finance"
	cfg.Data.TransactionsFile = "export.csv"

	c, err := NewContainer(cfg)
	require.NoError(t, err)

	fileStore, ok := c.GetStore().(*store.FileStore)
	require.True(t, ok)
	assert.Equal(t, "/srv/finance", fileStore.Paths().Directory)
	assert.Equal(t, "export.csv", fileStore.Paths().Transactions)
	assert.Equal(t, store.DefaultGoalsFile, fileStore.Paths().Goals)
}

func TestNewContainer_SQLiteBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Data.Backend = config.BackendSQLite
	cfg.Data.DSN = filepath.Join(t.TempDir(), "finance.db")
	cfg.Data.UserID = "local"

	c, err := NewContainer(cfg)
	require.NoError(t, err)

	_, ok := c.GetStore().(*store.SQLStore)
	require.True(t, ok)
	transactions, err := c.GetStore().LoadTransactions()
	require.NoError(t, err)
	assert.Empty(t, transactions)
	assert.NoError(t, c.Close())
}

func TestNewContainer_SQLBackendUnreachable(t *testing.T) {
	cfg := testConfig()
	cfg.Data.Backend = config.BackendSQLite
	cfg.Data.DSN = filepath.Join(t.TempDir(), "missing", "finance.db")
	cfg.Data.UserID = "local"

	_, err := NewContainer(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open sqlite store")
}

type closeRecorder struct {
	err    error
	closed bool
}

func (r *closeRecorder) Close() error {
	r.closed = true
	return r.err
}

type closingStore struct {
	*store.MockStore
	*closeRecorder
}

func TestContainerClose(t *testing.T) {
	aiErr := errors.New("ai connection reset")
	storeErr := errors.New("database is locked")
	tests := []struct {
		name      string
		aiErr     error
		storeErr  error
		wantErr   error
		wantWarns int
	}{
		{name: "both close cleanly"},
		{name: "AI client failure still closes the store", aiErr: aiErr, wantErr: aiErr, wantWarns: 1},
		{name: "store failure", storeErr: storeErr, wantErr: storeErr, wantWarns: 1},
		{name: "both fail, first error wins", aiErr: aiErr, storeErr: storeErr, wantErr: aiErr, wantWarns: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := &closeRecorder{err: tt.aiErr}
			ds := closingStore{MockStore: store.NewMockStore(), closeRecorder: &closeRecorder{err: tt.storeErr}}
			logger := logging.NewMockLogger()
			c := &Container{logger: logger, store: ds, aiClient: ai}

			err := c.Close()

			assert.True(t, ai.closed)
			assert.True(t, ds.closed)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.True(t, logger.HasEntry("DEBUG", "Container closed"))
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Len(t, logger.GetEntriesByLevel("WARN"), tt.wantWarns)
		})
	}
}

func TestNewContainerWithStore(t *testing.T) {
	mockStore := store.NewMockStore()
	logger := logging.NewMockLogger()
	n := narrator.New(nil, time.Second, logger)

	c, err := NewContainerWithStore(testConfig(), mockStore, n, logger)

	require.NoError(t, err)
	assert.Equal(t, mockStore, c.GetStore())
	assert.Equal(t, logger, c.GetLogger())
	assert.True(t, logger.HasEntry("DEBUG", "Container initialized successfully"))
}

func TestNewContainerWithStore_Errors(t *testing.T) {
	_, err := NewContainerWithStore(nil, store.NewMockStore(), nil, nil)
	assert.ErrorContains(t, err, "configuration cannot be nil")

	_, err = NewContainerWithStore(testConfig(), nil, nil, nil)
	assert.ErrorContains(t, err, "data store cannot be nil")
}
