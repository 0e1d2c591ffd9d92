package analysis

import (
	"fjacquet/plannerfin/internal/models"

	"github.com/shopspring/decimal"
)

// Score labels
const (
	ScoreExcellent = "Excellent"
	ScoreGood      = "Good"
	ScoreAttention = "Attention"
	ScoreCritical  = "Critical"
)

var (
	scoreBase            = decimal.NewFromInt(60)
	scoreSavingWeight    = decimal.NewFromInt(40)
	penaltyOverspent     = decimal.NewFromInt(30)
	penaltyNoIncome      = decimal.NewFromInt(40)
	penaltyTopCategory   = decimal.NewFromInt(10)
	topCategoryThreshold = decimal.RequireFromString("0.5")
	scoreMin             = decimal.Zero
	scoreMax             = decimal.NewFromInt(100)
	one                  = decimal.NewFromInt(1)
)

// ComputeScore maps a month to a 0-100 health score. The saving rate sets the
// base (60 ± 40); overspending, spending without income and a single category
// taking over half of the income are penalised.
func ComputeScore(a models.MonthAnalysis) int {
	income := models.NonNegative(a.Income)
	expense := models.NonNegative(a.Expense)

	saving := models.Clamp(a.SavingRate, one.Neg(), one)
	score := scoreBase.Add(saving.Mul(scoreSavingWeight))

	if income.IsPositive() && expense.GreaterThan(income) {
		score = score.Sub(penaltyOverspent)
	}
	if income.IsZero() && expense.IsPositive() {
		score = score.Sub(penaltyNoIncome)
	}
	if top, ok := a.TopCategory(); ok && income.IsPositive() {
		if top.Total.Div(income).GreaterThan(topCategoryThreshold) {
			score = score.Sub(penaltyTopCategory)
		}
	}

	// Non-negative after the clamp, so half away from zero rounds half up.
	return int(models.Clamp(score, scoreMin, scoreMax).Round(0).IntPart())
}

// ScoreLabel returns the display band of a score.
func ScoreLabel(score int) string {
	switch {
	case score >= 80:
		return ScoreExcellent
	case score >= 60:
		return ScoreGood
	case score >= 40:
		return ScoreAttention
	default:
		return ScoreCritical
	}
}
