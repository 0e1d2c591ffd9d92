package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FinancialProfile is the user's manually entered snapshot of salary and debts.
// The engine treats it as read-only input.
type FinancialProfile struct {
	Salary               decimal.Decimal `json:"salary" yaml:"salary"`
	DebtCreditCard       decimal.Decimal `json:"debt_credit_card" yaml:"debt_credit_card"`
	DebtOverdraft        decimal.Decimal `json:"debt_overdraft" yaml:"debt_overdraft"`
	CondoOverdue         decimal.Decimal `json:"condo_overdue" yaml:"condo_overdue"`
	CondoUpcoming        decimal.Decimal `json:"condo_upcoming" yaml:"condo_upcoming"`
	CondoUpcomingDueDate string          `json:"condo_upcoming_due_date,omitempty" yaml:"condo_upcoming_due_date,omitempty"`
}

// SuggestionMode selects the history window used for budget suggestions.
type SuggestionMode string

// ParseSuggestionMode validates s. An empty string selects the monthly window.
func ParseSuggestionMode(s string) (SuggestionMode, error) {
	switch SuggestionMode(s) {
	case "", SuggestionMonthly:
		return SuggestionMonthly, nil
	case SuggestionQuarterly:
		return SuggestionQuarterly, nil
	default:
		return "", fmt.Errorf("unsupported budget suggestion mode: %s (must be 'monthly' or 'quarterly')", s)
	}
}

// WindowSize returns the number of months averaged by the mode.
// Unknown modes fall back to the monthly window.
func (m SuggestionMode) WindowSize() int {
	if m == SuggestionQuarterly {
		return 3
	}
	return 1
}

// ConsultorPreferences holds the advisor settings. Defaults:
// DebtPaymentTarget 0, no essential categories, monthly suggestions and
// profile-derived transactions enabled.
type ConsultorPreferences struct {
	DebtPaymentTarget     decimal.Decimal `json:"debt_payment_target" yaml:"debt_payment_target"`
	EssentialCategoryIDs  []string        `json:"essential_category_ids" yaml:"essential_category_ids"`
	BudgetSuggestionMode  SuggestionMode  `json:"budget_suggestion_mode" yaml:"budget_suggestion_mode"`
	UseProfileOnDashboard bool            `json:"use_profile_on_dashboard" yaml:"use_profile_on_dashboard"`
}

// DefaultPreferences returns the documented preference defaults.
func DefaultPreferences() ConsultorPreferences {
	return ConsultorPreferences{
		DebtPaymentTarget:     decimal.Zero,
		EssentialCategoryIDs:  []string{},
		BudgetSuggestionMode:  SuggestionMonthly,
		UseProfileOnDashboard: true,
	}
}

// EssentialSet returns the essential category ids as a set.
func (p ConsultorPreferences) EssentialSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.EssentialCategoryIDs))
	for _, id := range p.EssentialCategoryIDs {
		set[id] = struct{}{}
	}
	return set
}

// UserSettings is the on-disk document holding profile and preferences.
type UserSettings struct {
	Profile     FinancialProfile     `json:"profile" yaml:"profile"`
	Preferences ConsultorPreferences `json:"preferences" yaml:"preferences"`
}

// DebtProfile is the input of the debt plan: the financial profile plus the
// fixed monthly amount the user wants to reserve for debts.
type DebtProfile struct {
	FinancialProfile
	DebtPaymentTarget decimal.Decimal
}

// NewDebtProfile combines a profile with the debt target from the preferences.
func NewDebtProfile(profile FinancialProfile, prefs ConsultorPreferences) DebtProfile {
	return DebtProfile{
		FinancialProfile:  profile,
		DebtPaymentTarget: prefs.DebtPaymentTarget,
	}
}
