package analysis

import (
	"testing"

	"fjacquet/plannerfin/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeAlerts(t *testing.T) {
	tests := []struct {
		name     string
		income   string
		expense  string
		expected []string
	}{
		{"no income never alerts", "0", "900", []string{}},
		{"healthy", "1000", "500", []string{}},
		{"low saving", "1000", "950", []string{AlertLowSavingRate, AlertHighExpenseRatio}},
		{"exactly 80 percent", "1000", "800", []string{}},
		{"just above 80 percent", "1000", "801", []string{AlertHighExpenseRatio}},
		{"exactly 10 percent saved", "1000", "900", []string{AlertHighExpenseRatio}},
		{"overspent", "1000", "1200", []string{AlertOverspent, AlertLowSavingRate, AlertHighExpenseRatio}},
		{"break even", "1000", "1000", []string{AlertLowSavingRate, AlertHighExpenseRatio}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Aggregate([]models.Transaction{
				income(tt.income, "salary"),
				expense(tt.expense, "food"),
			}, nil, testMonth)

			assert.Equal(t, tt.expected, ComputeAlerts(a))
		})
	}
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name     string
		analysis models.MonthAnalysis
		expected int
	}{
		{
			name:     "empty month",
			analysis: models.MonthAnalysis{},
			expected: 60,
		},
		{
			name:     "expenses without income",
			analysis: models.MonthAnalysis{Expense: dec("10")},
			expected: 20,
		},
		{
			name:     "saving rate above one is clamped",
			analysis: models.MonthAnalysis{Income: dec("100"), SavingRate: dec("3")},
			expected: 100,
		},
		{
			name:     "saving rate below minus one is clamped then floored",
			analysis: models.MonthAnalysis{Income: dec("100"), Expense: dec("500"), SavingRate: dec("-4")},
			expected: 0,
		},
		{
			name:     "rounds half up",
			analysis: models.MonthAnalysis{Income: dec("1000"), Expense: dec("700"), SavingRate: dec("0.3125")},
			expected: 73,
		},
		{
			name:     "rounds down below half",
			analysis: models.MonthAnalysis{Income: dec("1000"), Expense: dec("700"), SavingRate: dec("0.31")},
			expected: 72,
		},
		{
			name: "dominant top category",
			analysis: models.MonthAnalysis{
				Income:        dec("1000"),
				Expense:       dec("600"),
				SavingRate:    dec("0.4"),
				TopCategories: []models.CategoryTotal{{CategoryID: "housing", Total: dec("600")}},
			},
			expected: 66,
		},
		{
			name: "top category at exactly half is not penalised",
			analysis: models.MonthAnalysis{
				Income:        dec("1000"),
				Expense:       dec("500"),
				SavingRate:    dec("0.5"),
				TopCategories: []models.CategoryTotal{{CategoryID: "housing", Total: dec("500")}},
			},
			expected: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeScore(tt.analysis))
		})
	}
}

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, ScoreExcellent},
		{80, ScoreExcellent},
		{79, ScoreGood},
		{60, ScoreGood},
		{59, ScoreAttention},
		{40, ScoreAttention},
		{39, ScoreCritical},
		{0, ScoreCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ScoreLabel(tt.score), "score %d", tt.score)
	}
}
