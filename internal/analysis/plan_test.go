package analysis

import (
	"strings"
	"testing"

	"fjacquet/plannerfin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlan_NoTopCategory(t *testing.T) {
	a := AnalyzeMonth([]models.Transaction{income("1000", "salary")}, testCategories, testMonth)

	plan := BuildPlan(a)

	require.Len(t, plan, 3)
	assert.Contains(t, plan[0], "R$ 150,00")
	assert.Equal(t, PlanStepCategorize, plan[1])
	assert.Equal(t, PlanStepEssentialBudget, plan[2])
}

func TestBuildPlan_UnknownTopCategory(t *testing.T) {
	a := AnalyzeMonth([]models.Transaction{
		income("1000", "salary"),
		expense("200", "ghost"),
	}, testCategories, testMonth)

	plan := BuildPlan(a)

	require.Len(t, plan, 3)
	assert.True(t, strings.HasPrefix(plan[1], "Cut back on top category:"), plan[1])
	assert.Contains(t, plan[1], "R$ 30,00")
}

func TestBuildPlan_PositiveBalanceBelowTarget(t *testing.T) {
	a := AnalyzeMonth([]models.Transaction{
		income("1000", "salary"),
		expense("900", "food"),
	}, testCategories, testMonth)

	plan := BuildPlan(a)

	// target 150, balance 100: 50 missing.
	assert.Contains(t, plan[0], "at least R$ 150,00")
	assert.Contains(t, plan[0], "about R$ 50,00 to go")
}

func TestBuildPlan_BalanceEqualToTarget(t *testing.T) {
	a := AnalyzeMonth([]models.Transaction{
		income("1000", "salary"),
		expense("850", "food"),
	}, testCategories, testMonth)

	assert.Contains(t, BuildPlan(a)[0], "already saving well")
}

func TestFormatPlan(t *testing.T) {
	text := FormatPlan(testMonth, []string{"first", "second"})

	assert.Equal(t, "Action plan (2026-02)\n1. first\n2. second", text)
}

func TestFormatPlan_Empty(t *testing.T) {
	assert.Equal(t, "Action plan (2026-02)", FormatPlan(testMonth, nil))
}

func TestBuildDebtPlan(t *testing.T) {
	withIncome := models.MonthAnalysis{Income: dec("4000")}

	tests := []struct {
		name     string
		profile  models.DebtProfile
		analysis models.MonthAnalysis
		contains []string
	}{
		{
			name:     "nothing to do",
			profile:  models.DebtProfile{},
			contains: []string{},
		},
		{
			name:     "income alone adds the spending review",
			profile:  models.DebtProfile{},
			analysis: withIncome,
			contains: []string{DebtStepCutNonEssential},
		},
		{
			name: "every step in order",
			profile: models.DebtProfile{
				FinancialProfile: models.FinancialProfile{
					Salary:               dec("5000"),
					DebtCreditCard:       dec("800"),
					DebtOverdraft:        dec("300"),
					CondoOverdue:         dec("450"),
					CondoUpcoming:        dec("450"),
					CondoUpcomingDueDate: "2026-03-10",
				},
				DebtPaymentTarget: dec("600"),
			},
			analysis: withIncome,
			contains: []string{
				"overdue condo fee (R$ 450,00)",
				"upcoming condo fee by 2026-03-10",
				"overdraft first (R$ 300,00)",
				"credit card (R$ 800,00)",
				"fixed R$ 600,00 every month",
				DebtStepCutNonEssential,
			},
		},
		{
			name: "upcoming condo fee without due date",
			profile: models.DebtProfile{
				FinancialProfile: models.FinancialProfile{CondoUpcoming: dec("300")},
			},
			contains: []string{"by the due date"},
		},
		{
			name: "salary target rounds to whole reais",
			profile: models.DebtProfile{
				FinancialProfile: models.FinancialProfile{Salary: dec("2345.67")},
			},
			contains: []string{"about R$ 704,00 (30%"},
		},
		{
			name: "negative amounts are ignored",
			profile: models.DebtProfile{
				FinancialProfile: models.FinancialProfile{
					Salary:        dec("-100"),
					DebtOverdraft: dec("-5"),
				},
				DebtPaymentTarget: dec("-1"),
			},
			contains: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := BuildDebtPlan(tt.profile, tt.analysis)

			require.Len(t, plan, len(tt.contains))
			require.LessOrEqual(t, len(plan), MaxDebtPlanSteps)
			for i, fragment := range tt.contains {
				assert.Contains(t, plan[i], fragment)
			}
		})
	}
}

func TestBuildDebtPlan_TargetAndSuggestionAreExclusive(t *testing.T) {
	profile := models.DebtProfile{
		FinancialProfile:  models.FinancialProfile{Salary: dec("3000")},
		DebtPaymentTarget: dec("250"),
	}

	plan := BuildDebtPlan(profile, models.MonthAnalysis{})

	require.Len(t, plan, 1)
	assert.Contains(t, plan[0], "R$ 250,00")
	assert.NotContains(t, plan[0], "30%")
}
