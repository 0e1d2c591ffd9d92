package report

import (
	"encoding/json"
	"strings"
	"testing"

	"fjacquet/plannerfin/internal/analysis"
	"fjacquet/plannerfin/internal/logging"
	"fjacquet/plannerfin/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCategories = []models.Category{
	{ID: "salary", Name: "Salary", Kind: models.CategoryKindIncome},
	{ID: "housing", Name: "Housing", Kind: models.CategoryKindExpense, Icon: "🏠"},
	{ID: "food", Name: "Food", Kind: models.CategoryKindExpense, Icon: "🍽️"},
}

func healthyMonth() models.MonthAnalysis {
	return analysis.AnalyzeMonth([]models.Transaction{
		{Type: models.TransactionIncome, Date: "2026-02-05", Amount: decimal.NewFromInt(5000), CategoryID: "salary"},
		{Type: models.TransactionExpense, Date: "2026-02-10", Amount: decimal.NewFromInt(3000), CategoryID: "housing"},
	}, testCategories, "2026-02")
}

func TestReport_WithAnalysis(t *testing.T) {
	r := New("2026-02").WithAnalysis(healthyMonth())

	require.NotNil(t, r.Score)
	assert.Equal(t, 66, r.Score.Value)
	assert.Equal(t, analysis.ScoreGood, r.Score.Label)
	assert.Len(t, r.Plan, 3)
	assert.Nil(t, r.DebtPlan)
}

func TestReport_WithDebtPlanUsesAnalysis(t *testing.T) {
	profile := models.DebtProfile{FinancialProfile: models.FinancialProfile{
		Salary:         decimal.NewFromInt(3000),
		DebtCreditCard: decimal.NewFromInt(1000),
	}}

	withoutIncome := New("2026-02").WithDebtPlan(profile, models.MonthAnalysis{MonthKey: "2026-02"})
	withIncome := New("2026-02").WithDebtPlan(profile, healthyMonth())

	assert.NotContains(t, withoutIncome.DebtPlan, analysis.DebtStepCutNonEssential)
	assert.Contains(t, withIncome.DebtPlan, analysis.DebtStepCutNonEssential)
}

func TestGenerator_UnsupportedFormat(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger(), "R$")

	_, err := g.Generate(New("2026-02"), "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format: xml")
}

func TestGenerator_Text(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger(), "R$")
	r := New("2026-02").
		WithAnalysis(healthyMonth()).
		WithSuggestions(models.BudgetSuggestions{
			Label: analysis.LabelPreviousMonth,
			Items: []models.BudgetSuggestion{
				{CategoryID: "housing", Name: "Housing", AverageSpend: decimal.NewFromInt(3000), SuggestedAmount: decimal.NewFromInt(3300)},
			},
		}).
		WithBudgets([]models.BudgetUsage{
			{CategoryID: "housing", Name: "Housing", Spent: decimal.NewFromInt(3000), Limit: decimal.NewFromInt(2500), Percent: decimal.NewFromInt(120), State: models.BudgetStateOver},
			{CategoryID: "food", Name: "Food", Spent: decimal.Zero, State: models.BudgetStateNone},
		}).
		WithGoals([]models.GoalProgress{
			{Goal: models.Goal{Name: "Trip", TargetAmount: decimal.NewFromInt(4000), CurrentAmount: decimal.NewFromInt(1000)}, Percent: decimal.NewFromInt(25), Remaining: decimal.NewFromInt(3000)},
		})
	r.Narrative = "Keep going.\nYou are on track."

	out, err := g.Generate(r, "text")
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, "Month 2026-02\n"))
	assert.Contains(t, text, "Score: 66 (Good)")
	assert.Contains(t, text, "R$ 5.000,00")
	assert.Contains(t, text, "40%")
	assert.Contains(t, text, "No critical alerts.")
	assert.Contains(t, text, "🏠 Housing")
	assert.Contains(t, text, "Action plan\n  1. ")
	assert.Contains(t, text, "Budget suggestions (previous month, +10%)")
	assert.Contains(t, text, "R$ 3.300,00")
	assert.Contains(t, text, "120%")
	assert.Contains(t, text, "over")
	assert.Contains(t, text, "Trip")
	assert.Contains(t, text, "25%")
	assert.Contains(t, text, "Total saved: R$ 1.000,00")
	assert.Contains(t, text, "Advisor notes\n  Keep going.\n  You are on track.")
	assert.NotContains(t, text, "Debt plan")
}

func TestGenerator_TextEmptySections(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger(), "")
	r := New("2026-03").
		WithDebtPlan(models.DebtProfile{}, models.MonthAnalysis{}).
		WithSuggestions(models.BudgetSuggestions{Label: analysis.LabelTrailingQuarter, Items: []models.BudgetSuggestion{}}).
		WithBudgets([]models.BudgetUsage{}).
		WithGoals([]models.GoalProgress{})

	out, err := g.Generate(r, "text")
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "No debts registered in the profile.")
	assert.Contains(t, text, "Not enough data in the window.")
	assert.Contains(t, text, "No expense categories.")
	assert.Contains(t, text, "No goals yet.")
	assert.NotContains(t, text, "Score:")
}

func TestGenerator_JSON(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger(), "R$")
	r := New("2026-02").WithAnalysis(healthyMonth())

	out, err := g.Generate(r, "json")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "2026-02", decoded["month"])
	assert.Contains(t, decoded, "analysis")
	assert.Contains(t, decoded, "plan")
	assert.NotContains(t, decoded, "debt_plan")
	assert.NotContains(t, decoded, "narrative")

	score, ok := decoded["score"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(66), score["value"])
}

func TestGenerator_JSONListSections(t *testing.T) {
	tests := []struct {
		name    string
		report  *Report
		present []string
		absent  []string
	}{
		{
			name: "Computed but empty sections stay as empty lists",
			report: New("2026-03").
				WithDebtPlan(models.DebtProfile{}, models.MonthAnalysis{}).
				WithBudgets([]models.BudgetUsage{}).
				WithGoals([]models.GoalProgress{}),
			present: []string{"debt_plan", "budgets", "goals"},
		},
		{
			name:   "Sections never computed are omitted",
			report: New("2026-03"),
			absent: []string{"debt_plan", "budgets", "goals"},
		},
	}
	g := NewGenerator(logging.NewMockLogger(), "R$")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := g.Generate(tt.report, "json")
			require.NoError(t, err)

			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(out, &decoded))
			assert.Equal(t, "2026-03", decoded["month"])
			for _, key := range tt.present {
				assert.Equal(t, []interface{}{}, decoded[key], key)
			}
			for _, key := range tt.absent {
				assert.NotContains(t, decoded, key)
			}
		})
	}
}

func TestGenerator_JSONDebtPlanSteps(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger(), "R$")
	profile := models.DebtProfile{FinancialProfile: models.FinancialProfile{DebtCreditCard: decimal.NewFromInt(1000)}}
	r := New("2026-02").WithDebtPlan(profile, healthyMonth())

	out, err := g.Generate(r, "json")
	require.NoError(t, err)

	var decoded struct {
		DebtPlan []string `json:"debt_plan"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, r.DebtPlan, decoded.DebtPlan)
	assert.NotEmpty(t, decoded.DebtPlan)
}

func TestCopyablePlan(t *testing.T) {
	r := New("2026-02").WithAnalysis(healthyMonth())

	plan := CopyablePlan(r)

	assert.True(t, strings.HasPrefix(plan, "Action plan (2026-02)\n1. "))
}
