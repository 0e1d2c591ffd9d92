package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the expense total of one category within a period.
// Name and Icon are empty when the category id had no metadata.
type CategoryTotal struct {
	CategoryID string          `json:"category_id" yaml:"category_id"`
	Name       string          `json:"name,omitempty" yaml:"name,omitempty"`
	Icon       string          `json:"icon,omitempty" yaml:"icon,omitempty"`
	Total      decimal.Decimal `json:"total" yaml:"total"`
}

// Known reports whether category metadata was found for the total.
func (c CategoryTotal) Known() bool {
	return c.Name != ""
}

// Label returns "icon name" for display, or a placeholder for unknown categories.
func (c CategoryTotal) Label() string {
	if !c.Known() {
		return CategoryUncategorized
	}
	icon := c.Icon
	if icon == "" {
		icon = CategoryDefaultIcon
	}
	return strings.TrimSpace(icon + " " + c.Name)
}

// MonthAnalysis is the derived summary of one month. It is rebuilt on every
// call and never mutated afterwards.
type MonthAnalysis struct {
	MonthKey      MonthKey        `json:"month_key" yaml:"month_key"`
	Income        decimal.Decimal `json:"income" yaml:"income"`
	Expense       decimal.Decimal `json:"expense" yaml:"expense"`
	Balance       decimal.Decimal `json:"balance" yaml:"balance"`
	SavingRate    decimal.Decimal `json:"saving_rate" yaml:"saving_rate"`
	TopCategories []CategoryTotal `json:"top_categories" yaml:"top_categories"`
	Alerts        []string        `json:"alerts" yaml:"alerts"`
}

// TopCategory returns the largest expense category, if any.
func (a MonthAnalysis) TopCategory() (CategoryTotal, bool) {
	if len(a.TopCategories) == 0 {
		return CategoryTotal{}, false
	}
	return a.TopCategories[0], true
}

// BudgetSuggestion is a suggested monthly budget for one category.
type BudgetSuggestion struct {
	CategoryID      string          `json:"category_id" yaml:"category_id"`
	Name            string          `json:"name,omitempty" yaml:"name,omitempty"`
	AverageSpend    decimal.Decimal `json:"average_spend" yaml:"average_spend"`
	SuggestedAmount decimal.Decimal `json:"suggested_amount" yaml:"suggested_amount"`
}

// BudgetSuggestions is the ranked result of a suggestion run.
type BudgetSuggestions struct {
	Items  []BudgetSuggestion `json:"items" yaml:"items"`
	Label  string             `json:"label" yaml:"label"`
	Mode   SuggestionMode     `json:"mode" yaml:"mode"`
	Window []MonthKey         `json:"window" yaml:"window"`
}

// ExpenseHistory holds per-month expense totals keyed by category id.
type ExpenseHistory map[MonthKey]map[string]decimal.Decimal

// BuildExpenseHistory sums expense amounts by month and category.
// Amounts that are not positive and transactions with malformed dates are skipped.
func BuildExpenseHistory(transactions []Transaction) ExpenseHistory {
	history := make(ExpenseHistory)
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		month := tx.MonthKey()
		if month == "" {
			continue
		}
		amount := NonNegative(tx.Amount)
		if amount.IsZero() {
			continue
		}
		totals, ok := history[month]
		if !ok {
			totals = make(map[string]decimal.Decimal)
			history[month] = totals
		}
		totals[tx.CategoryID] = totals[tx.CategoryID].Add(amount)
	}
	return history
}
