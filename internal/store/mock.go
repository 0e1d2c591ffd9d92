package store

import (
	"fjacquet/plannerfin/internal/models"
)

// MockStore is an in-memory DataStore for testing.
type MockStore struct {
	Transactions []models.Transaction
	Categories   []models.Category
	Settings     models.UserSettings
	Budgets      []models.Budget
	Goals        []models.Goal

	// SavedBudgets records every SaveBudgets call.
	SavedBudgets        [][]models.Budget
	// ExportedSuggestions records WriteSuggestionsCSV calls by file path.
	ExportedSuggestions map[string]models.BudgetSuggestions

	// Error flags for testing error conditions
	LoadTransactionsError error
	LoadCategoriesError   error
	LoadSettingsError     error
	LoadBudgetsError      error
	SaveBudgetsError      error
	LoadGoalsError        error
	ExportError           error
}

// NewMockStore returns a MockStore holding default settings.
func NewMockStore() *MockStore {
	return &MockStore{Settings: models.UserSettings{Preferences: models.DefaultPreferences()}}
}

// LoadTransactions returns a copy of the mock transactions.
func (m *MockStore) LoadTransactions() ([]models.Transaction, error) {
	if m.LoadTransactionsError != nil {
		return nil, m.LoadTransactionsError
	}
	return append([]models.Transaction(nil), m.Transactions...), nil
}

// LoadCategories returns a copy of the mock categories.
func (m *MockStore) LoadCategories() ([]models.Category, error) {
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	return append([]models.Category(nil), m.Categories...), nil
}

// LoadSettings returns the mock settings.
func (m *MockStore) LoadSettings() (models.UserSettings, error) {
	if m.LoadSettingsError != nil {
		return models.UserSettings{}, m.LoadSettingsError
	}
	return m.Settings, nil
}

// LoadBudgets returns a copy of the mock budgets.
func (m *MockStore) LoadBudgets() ([]models.Budget, error) {
	if m.LoadBudgetsError != nil {
		return nil, m.LoadBudgetsError
	}
	return append([]models.Budget(nil), m.Budgets...), nil
}

// SaveBudgets replaces the mock budgets and records the call.
func (m *MockStore) SaveBudgets(budgets []models.Budget) error {
	if m.SaveBudgetsError != nil {
		return m.SaveBudgetsError
	}
	saved := append([]models.Budget(nil), budgets...)
	m.SavedBudgets = append(m.SavedBudgets, saved)
	m.Budgets = saved
	return nil
}

// LoadGoals returns a copy of the mock goals.
func (m *MockStore) LoadGoals() ([]models.Goal, error) {
	if m.LoadGoalsError != nil {
		return nil, m.LoadGoalsError
	}
	return append([]models.Goal(nil), m.Goals...), nil
}

// WriteSuggestionsCSV records the export instead of writing a file.
func (m *MockStore) WriteSuggestionsCSV(filePath string, _ models.MonthKey, suggestions models.BudgetSuggestions) error {
	if m.ExportError != nil {
		return m.ExportError
	}
	if m.ExportedSuggestions == nil {
		m.ExportedSuggestions = make(map[string]models.BudgetSuggestions)
	}
	m.ExportedSuggestions[filePath] = suggestions
	return nil
}

var (
	_ DataStore = (*MockStore)(nil)
	_ DataStore = (*FileStore)(nil)
)
