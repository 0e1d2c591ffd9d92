package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fjacquet/plannerfin/internal/dateutils"
	"fjacquet/plannerfin/internal/loaderror"
	"fjacquet/plannerfin/internal/logging"
	"fjacquet/plannerfin/internal/models"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQL drivers accepted by OpenSQLStore.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultQueryTimeout bounds every query of a SQLStore.
const DefaultQueryTimeout = 10 * time.Second

// SQLStore reads the snapshot of one user from a SQL database holding the
// backend tables (transactions, categories, budgets, goals, user_settings).
type SQLStore struct {
	db        *sql.DB
	driver    string
	userID    string
	delimiter rune
	timeout   time.Duration
	logger    logging.Logger
}

// SQLOptions configures OpenSQLStore.
type SQLOptions struct {
	Driver string
	DSN    string
	UserID string
	// Delimiter is used by the CSV export. Zero means a comma.
	Delimiter rune
	// Timeout bounds each query. Zero means DefaultQueryTimeout.
	Timeout time.Duration
}

// OpenSQLStore connects to the database, applies pending migrations and
// returns a store scoped to opts.UserID.
func OpenSQLStore(ctx context.Context, opts SQLOptions, logger logging.Logger) (*SQLStore, error) {
	if opts.Driver != DriverSQLite && opts.Driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported SQL driver: %s", opts.Driver)
	}
	if opts.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultQueryTimeout
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	if err := RunMigrations(opts.Driver, opts.DSN); err != nil {
		return nil, err
	}

	db, err := sql.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", opts.Driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", opts.Driver, err)
	}
	if opts.Driver == DriverSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}

	logger.Debug("Connected to database", logging.Field{Key: "driver", Value: opts.Driver})
	return &SQLStore{
		db:        db,
		driver:    opts.Driver,
		userID:    opts.UserID,
		delimiter: opts.Delimiter,
		timeout:   opts.Timeout,
		logger:    logger.WithField("component", "SQLStore"),
	}, nil
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind turns ? placeholders into $n for Postgres.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *SQLStore) query(table, query string, scan func(*sql.Rows) error) error {
	ctx, cancel := s.withTimeout()
	defer cancel()

	start := time.Now()
	rows, err := s.db.QueryContext(ctx, s.rebind(query), s.userID)
	if err != nil {
		return fmt.Errorf("error querying %s: %w", table, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	count := 0
	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("error reading %s: %w", table, err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error reading %s: %w", table, err)
	}

	s.logger.Debug("Loaded rows",
		logging.Field{Key: "table", Value: table},
		logging.Field{Key: logging.FieldCount, Value: count},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).String()})
	return nil
}

// LoadTransactions loads the user's transactions ordered by date. Rows with an
// unknown type or date are skipped with a warning.
func (s *SQLStore) LoadTransactions() ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	err := s.query("transactions", `SELECT id, type, amount, category_id, CAST(date AS TEXT), description, payment_method
FROM transactions WHERE user_id = ? ORDER BY date, id`, func(rows *sql.Rows) error {
		var (
			id, txType, date               string
			amount                         decimal.NullDecimal
			category, description, payment sql.NullString
		)
		if err := rows.Scan(&id, &txType, &amount, &category, &date, &description, &payment); err != nil {
			return err
		}

		tx, err := convertRow("transactions", 0, TransactionRow{
			ID:            id,
			Type:          txType,
			Date:          date,
			CategoryID:    category.String,
			Description:   description.String,
			PaymentMethod: payment.String,
		})
		if err != nil {
			s.logger.WithError(err).Warn("Skipping transaction row",
				logging.Field{Key: logging.FieldTransactionID, Value: id})
			return nil
		}
		if amount.Valid {
			tx.Amount = amount.Decimal
		}
		transactions = append(transactions, tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// LoadCategories loads the user's categories ordered by name.
func (s *SQLStore) LoadCategories() ([]models.Category, error) {
	categories := []models.Category{}
	err := s.query("categories", `SELECT id, name, kind, color, icon
FROM categories WHERE user_id = ? ORDER BY name, id`, func(rows *sql.Rows) error {
		var (
			c           models.Category
			kind        string
			color, icon sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &kind, &color, &icon); err != nil {
			return err
		}
		c.Kind = models.CategoryKind(kind)
		if c.Kind == "" {
			c.Kind = models.CategoryKindBoth
		}
		c.Color = color.String
		c.Icon = icon.String
		categories = append(categories, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// LoadSettings loads the financial profile and the preferences stored as JSON
// documents. A user without settings gets the defaults.
func (s *SQLStore) LoadSettings() (models.UserSettings, error) {
	settings := models.UserSettings{Preferences: models.DefaultPreferences()}

	ctx, cancel := s.withTimeout()
	defer cancel()

	var profileJSON, prefsJSON string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT financial_profile, consultor_preferences
FROM user_settings WHERE user_id = ?`), s.userID).Scan(&profileJSON, &prefsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("No settings stored, using defaults",
			logging.Field{Key: "user_id", Value: s.userID})
		return settings, nil
	}
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("error querying user_settings: %w", err)
	}

	if err := decodeJSONColumn("financial_profile", profileJSON, &settings.Profile); err != nil {
		return models.UserSettings{}, err
	}
	if err := decodeJSONColumn("consultor_preferences", prefsJSON, &settings.Preferences); err != nil {
		return models.UserSettings{}, err
	}

	mode, err := models.ParseSuggestionMode(string(settings.Preferences.BudgetSuggestionMode))
	if err != nil {
		return models.UserSettings{}, &loaderror.ParseError{
			Source: "user_settings",
			Field:  "budget_suggestion_mode",
			Value:  string(settings.Preferences.BudgetSuggestionMode),
			Err:    err,
		}
	}
	settings.Preferences.BudgetSuggestionMode = mode
	if settings.Preferences.EssentialCategoryIDs == nil {
		settings.Preferences.EssentialCategoryIDs = []string{}
	}
	return settings, nil
}

func decodeJSONColumn(column, value string, out interface{}) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return &loaderror.InvalidFormatError{
			FilePath:       "user_settings." + column,
			ExpectedFormat: "JSON object",
			Msg:            err.Error(),
		}
	}
	return nil
}

// LoadBudgets loads the user's budgets ordered by month and category.
func (s *SQLStore) LoadBudgets() ([]models.Budget, error) {
	budgets := []models.Budget{}
	err := s.query("budgets", `SELECT month_key, category_id, amount
FROM budgets WHERE user_id = ? ORDER BY month_key, category_id`, func(rows *sql.Rows) error {
		var (
			b     models.Budget
			month string
		)
		if err := rows.Scan(&month, &b.CategoryID, &b.Amount); err != nil {
			return err
		}
		b.MonthKey = models.MonthKey(month)
		if !b.MonthKey.Valid() {
			return &loaderror.ValidationError{
				FilePath: "budgets",
				Reason:   fmt.Sprintf("month_key '%s' is not YYYY-MM", month),
			}
		}
		budgets = append(budgets, b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return budgets, nil
}

// SaveBudgets upserts budgets by month and category in one transaction.
// Budgets absent from the list are left untouched.
func (s *SQLStore) SaveBudgets(budgets []models.Budget) error {
	ctx, cancel := s.withTimeout()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, s.rebind(`INSERT INTO budgets (id, user_id, month_key, category_id, amount)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id, month_key, category_id)
DO UPDATE SET amount = excluded.amount, updated_at = CURRENT_TIMESTAMP`))
	if err != nil {
		return fmt.Errorf("error preparing budget upsert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, b := range budgets {
		if _, err := stmt.ExecContext(ctx, uuid.NewString(), s.userID, b.MonthKey.String(), b.CategoryID, b.Amount); err != nil {
			return fmt.Errorf("error saving budget %s/%s: %w", b.MonthKey, b.CategoryID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing budgets: %w", err)
	}

	s.logger.Info("Saved budgets",
		logging.Field{Key: "user_id", Value: s.userID},
		logging.Field{Key: logging.FieldCount, Value: len(budgets)})
	return nil
}

// LoadGoals loads the user's savings goals ordered by deadline, goals without
// one last.
func (s *SQLStore) LoadGoals() ([]models.Goal, error) {
	goals := []models.Goal{}
	err := s.query("goals", `SELECT id, name, target_amount, current_amount, CAST(deadline AS TEXT), notes
FROM goals WHERE user_id = ? ORDER BY deadline IS NULL, deadline, name`, func(rows *sql.Rows) error {
		var (
			g               models.Goal
			deadline, notes sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &deadline, &notes); err != nil {
			return err
		}
		if deadline.Valid {
			if iso, err := dateutils.NormalizeISODate(deadline.String); err == nil {
				g.Deadline = iso
			}
		}
		g.Notes = notes.String
		goals = append(goals, g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// WriteSuggestionsCSV exports budget suggestions for month to a local file.
func (s *SQLStore) WriteSuggestionsCSV(filePath string, month models.MonthKey, suggestions models.BudgetSuggestions) error {
	return writeSuggestionsCSV(filePath, s.delimiter, month, suggestions, s.logger)
}

var _ DataStore = (*SQLStore)(nil)
