package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestionMode(t *testing.T) {
	tests := []struct {
		input       string
		expected    SuggestionMode
		expectError bool
	}{
		{input: "", expected: SuggestionMonthly},
		{input: "monthly", expected: SuggestionMonthly},
		{input: "quarterly", expected: SuggestionQuarterly},
		{input: "yearly", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseSuggestionMode(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}

func TestSuggestionMode_WindowSize(t *testing.T) {
	assert.Equal(t, 1, SuggestionMonthly.WindowSize())
	assert.Equal(t, 3, SuggestionQuarterly.WindowSize())
	assert.Equal(t, 1, SuggestionMode("weird").WindowSize())
}

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()

	assert.True(t, prefs.DebtPaymentTarget.IsZero())
	assert.Empty(t, prefs.EssentialCategoryIDs)
	assert.Equal(t, SuggestionMonthly, prefs.BudgetSuggestionMode)
	assert.True(t, prefs.UseProfileOnDashboard)
}

func TestEssentialSet(t *testing.T) {
	prefs := ConsultorPreferences{EssentialCategoryIDs: []string{"food", "transport", "food"}}
	set := prefs.EssentialSet()

	assert.Len(t, set, 2)
	assert.Contains(t, set, "food")
	assert.Contains(t, set, "transport")
}

func TestNewDebtProfile(t *testing.T) {
	profile := FinancialProfile{Salary: decimal.NewFromInt(3000)}
	prefs := ConsultorPreferences{DebtPaymentTarget: decimal.NewFromInt(500)}

	debt := NewDebtProfile(profile, prefs)

	assert.Equal(t, "3000", debt.Salary.String())
	assert.Equal(t, "500", debt.DebtPaymentTarget.String())
}
