// Package store loads the user's exported data snapshot from files and writes
// back the few results the tool produces (applied budgets, CSV exports).
// YAML documents that do not exist load as empty or default values; only the
// transactions file is required.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/plannerfin/internal/fileutils"
	"fjacquet/plannerfin/internal/loaderror"
	"fjacquet/plannerfin/internal/logging"
	"fjacquet/plannerfin/internal/models"
	"fjacquet/plannerfin/internal/validation"

	"gopkg.in/yaml.v3"
)

// Default file names inside the data directory.
const (
	DefaultTransactionsFile = "transactions.csv"
	DefaultCategoriesFile   = "categories.yaml"
	DefaultSettingsFile     = "settings.yaml"
	DefaultBudgetsFile      = "budgets.yaml"
	DefaultGoalsFile        = "goals.yaml"
)

// DataStore is the set of snapshot operations the commands depend on.
type DataStore interface {
	LoadTransactions() ([]models.Transaction, error)
	LoadCategories() ([]models.Category, error)
	LoadSettings() (models.UserSettings, error)
	LoadBudgets() ([]models.Budget, error)
	SaveBudgets(budgets []models.Budget) error
	LoadGoals() ([]models.Goal, error)
	WriteSuggestionsCSV(filePath string, month models.MonthKey, suggestions models.BudgetSuggestions) error
}

// Paths locates the data files. Relative names are resolved against Directory.
type Paths struct {
	Directory    string
	Transactions string
	Categories   string
	Settings     string
	Budgets      string
	Goals        string
}

// FileStore reads and writes the snapshot on the local filesystem.
type FileStore struct {
	paths     Paths
	delimiter rune
	logger    logging.Logger
}

// NewFileStore creates a FileStore. Empty file names fall back to the defaults
// and a zero delimiter to a comma.
func NewFileStore(paths Paths, delimiter rune, logger logging.Logger) *FileStore {
	if paths.Transactions == "" {
		paths.Transactions = DefaultTransactionsFile
	}
	if paths.Categories == "" {
		paths.Categories = DefaultCategoriesFile
	}
	if paths.Settings == "" {
		paths.Settings = DefaultSettingsFile
	}
	if paths.Budgets == "" {
		paths.Budgets = DefaultBudgetsFile
	}
	if paths.Goals == "" {
		paths.Goals = DefaultGoalsFile
	}
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &FileStore{paths: paths, delimiter: delimiter, logger: logger}
}

// Paths returns the configured paths after defaults were applied.
func (s *FileStore) Paths() Paths {
	return s.paths
}

// ResolvePath returns the location of name: absolute names are kept, relative
// ones are joined to the data directory.
func (s *FileStore) ResolvePath(name string) string {
	if filepath.IsAbs(name) || s.paths.Directory == "" {
		return name
	}
	return filepath.Join(s.paths.Directory, name)
}

// readYAML decodes the file into out. It reports false without error when the
// file does not exist, leaving out untouched.
func (s *FileStore) readYAML(name string, out interface{}) (bool, error) {
	path := s.ResolvePath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Data file not found, using defaults",
				logging.Field{Key: logging.FieldFile, Value: path})
			return false, nil
		}
		return false, fmt.Errorf("error reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return false, &loaderror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "YAML document",
			Msg:            err.Error(),
		}
	}
	return true, nil
}

func (s *FileStore) writeYAML(name string, in interface{}) error {
	path := s.ResolvePath(name)
	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("error marshaling %s: %w", path, err)
	}
	if err := fileutils.WriteFile(path, data, models.PermissionConfigFile); err != nil {
		return &loaderror.WriteError{FilePath: path, Err: err}
	}
	return nil
}

// LoadCategories loads the category list. A missing file yields no categories.
func (s *FileStore) LoadCategories() ([]models.Category, error) {
	var doc models.CategoriesConfig
	if _, err := s.readYAML(s.paths.Categories, &doc); err != nil {
		return nil, err
	}
	categories := make([]models.Category, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		if c.ID == "" {
			s.logger.Warn("Skipping category without id",
				logging.Field{Key: logging.FieldCategory, Value: c.Name})
			continue
		}
		if c.Kind == "" {
			c.Kind = models.CategoryKindBoth
		}
		categories = append(categories, c)
	}
	s.logger.Debug("Loaded categories",
		logging.Field{Key: logging.FieldFile, Value: s.ResolvePath(s.paths.Categories)},
		logging.Field{Key: logging.FieldCount, Value: len(categories)})
	return categories, nil
}

// LoadSettings loads the financial profile and the preferences. Keys missing
// from the file keep their documented defaults.
func (s *FileStore) LoadSettings() (models.UserSettings, error) {
	settings := models.UserSettings{Preferences: models.DefaultPreferences()}
	found, err := s.readYAML(s.paths.Settings, &settings)
	if err != nil {
		return models.UserSettings{}, err
	}
	if found {
		s.checkPermissions(s.ResolvePath(s.paths.Settings))
	}

	mode, err := models.ParseSuggestionMode(string(settings.Preferences.BudgetSuggestionMode))
	if err != nil {
		return models.UserSettings{}, &loaderror.ParseError{
			Source: s.ResolvePath(s.paths.Settings),
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

// checkPermissions warns when a file holding the financial profile can be
// read by other users.
func (s *FileStore) checkPermissions(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
		s.logger.WithError(err).Warn("Settings file is readable by other users",
			logging.Field{Key: logging.FieldFile, Value: path})
	}
}

// LoadBudgets loads all budgets. Every entry must name a valid month and a category.
func (s *FileStore) LoadBudgets() ([]models.Budget, error) {
	var doc models.BudgetsConfig
	if _, err := s.readYAML(s.paths.Budgets, &doc); err != nil {
		return nil, err
	}
	path := s.ResolvePath(s.paths.Budgets)
	for i, b := range doc.Budgets {
		if !b.MonthKey.Valid() {
			return nil, &loaderror.ValidationError{
				FilePath: path,
				Reason:   fmt.Sprintf("budget %d: month_key '%s' is not YYYY-MM", i+1, b.MonthKey),
			}
		}
		if b.CategoryID == "" {
			return nil, &loaderror.ValidationError{
				FilePath: path,
				Reason:   fmt.Sprintf("budget %d: category_id is required", i+1),
			}
		}
	}
	if doc.Budgets == nil {
		doc.Budgets = []models.Budget{}
	}
	return doc.Budgets, nil
}

// SaveBudgets replaces the budgets file with budgets.
func (s *FileStore) SaveBudgets(budgets []models.Budget) error {
	if err := s.writeYAML(s.paths.Budgets, models.BudgetsConfig{Budgets: budgets}); err != nil {
		return err
	}
	s.logger.Info("Saved budgets",
		logging.Field{Key: logging.FieldOutputFile, Value: s.ResolvePath(s.paths.Budgets)},
		logging.Field{Key: logging.FieldCount, Value: len(budgets)})
	return nil
}

// LoadGoals loads the savings goals. A missing file yields no goals.
func (s *FileStore) LoadGoals() ([]models.Goal, error) {
	var doc models.GoalsConfig
	if _, err := s.readYAML(s.paths.Goals, &doc); err != nil {
		return nil, err
	}
	if doc.Goals == nil {
		doc.Goals = []models.Goal{}
	}
	return doc.Goals, nil
}

// UpsertBudgets merges updates into existing: an update replaces the budget of
// the same month and category in place, the others are appended in order.
func UpsertBudgets(existing, updates []models.Budget) []models.Budget {
	merged := append([]models.Budget(nil), existing...)
	position := make(map[string]int, len(merged))
	for i, b := range merged {
		position[budgetKey(b)] = i
	}
	for _, u := range updates {
		if i, ok := position[budgetKey(u)]; ok {
			merged[i] = u
			continue
		}
		position[budgetKey(u)] = len(merged)
		merged = append(merged, u)
	}
	return merged
}

func budgetKey(b models.Budget) string {
	return string(b.MonthKey) + "|" + b.CategoryID
}

// BudgetsFromSuggestions turns suggestions into budgets of month, rounded to cents.
func BudgetsFromSuggestions(month models.MonthKey, suggestions []models.BudgetSuggestion) []models.Budget {
	budgets := make([]models.Budget, 0, len(suggestions))
	for _, sg := range suggestions {
		budgets = append(budgets, models.Budget{
			MonthKey:   month,
			CategoryID: sg.CategoryID,
			Amount:     sg.SuggestedAmount.Round(2),
		})
	}
	return budgets
}
