package analysis

import (
	"testing"

	"fjacquet/plannerfin/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBudget(t *testing.T) {
	tests := []struct {
		name      string
		spent     string
		limit     string
		wantPct   string
		wantState models.BudgetState
	}{
		{"no budget", "100", "0", "0", models.BudgetStateNone},
		{"negative budget", "100", "-5", "0", models.BudgetStateNone},
		{"nothing spent", "0", "500", "0", models.BudgetStateOK},
		{"below warning", "399", "500", "79.8", models.BudgetStateOK},
		{"warning threshold", "400", "500", "80", models.BudgetStateWarn},
		{"at limit", "500", "500", "100", models.BudgetStateOver},
		{"far over is capped", "100000", "10", "999", models.BudgetStateOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, state := ClassifyBudget(dec(tt.spent), dec(tt.limit))

			assert.True(t, dec(tt.wantPct).Equal(pct), "percent %s", pct)
			assert.Equal(t, tt.wantState, state)
		})
	}
}

func TestBudgetStatus(t *testing.T) {
	transactions := []models.Transaction{
		expenseOn("2026-02-02", "450", "food"),
		expenseOn("2026-02-15", "150", "food"),
		expenseOn("2026-01-15", "9999", "food"),
		expenseOn("2026-02-03", "120", "transport"),
		income("5000", "salary"),
	}
	budgets := []models.Budget{
		{MonthKey: testMonth, CategoryID: "food", Amount: dec("500")},
		{MonthKey: testMonth, CategoryID: "transport", Amount: dec("1000")},
		{MonthKey: "2026-01", CategoryID: "housing", Amount: dec("2000")},
	}

	usage := BudgetStatus(transactions, testCategories, budgets, testMonth)

	require.Len(t, usage, 3, "income categories are not budgeted")
	byID := map[string]models.BudgetUsage{}
	for _, u := range usage {
		byID[u.CategoryID] = u
	}

	assert.Equal(t, []string{"housing", "food", "transport"}, []string{usage[0].CategoryID, usage[1].CategoryID, usage[2].CategoryID})

	assert.Equal(t, models.BudgetStateNone, byID["housing"].State)
	assert.True(t, byID["housing"].Limit.IsZero())

	assert.Equal(t, models.BudgetStateOver, byID["food"].State)
	assert.True(t, dec("600").Equal(byID["food"].Spent))
	assert.True(t, dec("120").Equal(byID["food"].Percent))

	assert.Equal(t, models.BudgetStateOK, byID["transport"].State)
	assert.True(t, dec("12").Equal(byID["transport"].Percent))
}

func TestBudgetStatus_NoCategories(t *testing.T) {
	usage := BudgetStatus(nil, nil, nil, testMonth)

	assert.NotNil(t, usage)
	assert.Empty(t, usage)
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		current       string
		wantPct       string
		wantRemaining string
	}{
		{"halfway", "1000", "500", "50", "500"},
		{"complete", "1000", "1000", "100", "0"},
		{"over target is capped", "1000", "1500", "100", "0"},
		{"nothing saved", "1000", "0", "0", "1000"},
		{"zero target", "0", "10", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GoalProgress(models.Goal{ID: "g", TargetAmount: dec(tt.target), CurrentAmount: dec(tt.current)})

			assert.True(t, dec(tt.wantPct).Equal(p.Percent), "percent %s", p.Percent)
			assert.True(t, dec(tt.wantRemaining).Equal(p.Remaining), "remaining %s", p.Remaining)
			assert.Equal(t, "g", p.Goal.ID)
		})
	}
}

func TestGoalsProgressAndTotalSaved(t *testing.T) {
	goals := []models.Goal{
		{ID: "trip", TargetAmount: dec("4000"), CurrentAmount: dec("1000")},
		{ID: "fund", TargetAmount: dec("10000"), CurrentAmount: dec("2500")},
	}

	progress := GoalsProgress(goals)

	require.Len(t, progress, 2)
	assert.Equal(t, "trip", progress[0].Goal.ID)
	assert.True(t, dec("25").Equal(progress[1].Percent))
	assert.True(t, dec("3500").Equal(TotalSaved(goals)))
	assert.True(t, decimal.Zero.Equal(TotalSaved(nil)))
}

func TestNonEssentialSpending(t *testing.T) {
	transactions := []models.Transaction{
		expense("1500", "housing"),
		expense("300", "food"),
		expense("90", "ghost"),
		expense("400", "transport"),
		income("4000", "salary"),
	}
	essential := models.ConsultorPreferences{EssentialCategoryIDs: []string{"housing"}}.EssentialSet()

	totals := NonEssentialSpending(transactions, testCategories, essential)

	require.Len(t, totals, 3)
	assert.Equal(t, "transport", totals[0].CategoryID)
	assert.Equal(t, "food", totals[1].CategoryID)
	assert.Equal(t, models.CategoryUncategorized, totals[2].Label())
}

func TestNonEssentialSpending_NilEssentialSet(t *testing.T) {
	totals := NonEssentialSpending([]models.Transaction{expense("10", "food")}, testCategories, nil)

	require.Len(t, totals, 1)
	assert.Equal(t, "🍽️ Food", totals[0].Label())
}
