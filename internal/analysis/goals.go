package analysis

import (
	"fjacquet/plannerfin/internal/models"

	"github.com/shopspring/decimal"
)

// GoalProgress reports how far a savings goal is: percent complete, capped
// at 100, and the amount still missing.
func GoalProgress(goal models.Goal) models.GoalProgress {
	target := models.NonNegative(goal.TargetAmount)
	current := models.NonNegative(goal.CurrentAmount)

	pct := models.Ratio(current, target).Mul(hundred)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	return models.GoalProgress{
		Goal:      goal,
		Percent:   pct,
		Remaining: models.NonNegative(target.Sub(current)),
	}
}

// GoalsProgress applies GoalProgress to every goal, preserving order.
func GoalsProgress(goals []models.Goal) []models.GoalProgress {
	progress := make([]models.GoalProgress, 0, len(goals))
	for _, g := range goals {
		progress = append(progress, GoalProgress(g))
	}
	return progress
}

// TotalSaved sums the current amounts of all goals.
func TotalSaved(goals []models.Goal) decimal.Decimal {
	total := decimal.Zero
	for _, g := range goals {
		total = total.Add(models.NonNegative(g.CurrentAmount))
	}
	return total
}
