package analysis

import (
	"fmt"
	"strings"

	"fjacquet/plannerfin/internal/currencyutils"
	"fjacquet/plannerfin/internal/models"

	"github.com/shopspring/decimal"
)

// MaxPlanSteps bounds the action plan.
const MaxPlanSteps = 3

// Fixed plan steps. The first three are the whole plan of a month without income.
const (
	PlanStepRecordIncome    = "Record at least one income this month (salary, side jobs, etc.) to measure your real balance."
	PlanStepListFixed       = "List all fixed expenses (housing, bills, transport) and mark each as mandatory or optional."
	PlanStepWeeklyCap       = "Set a weekly spending cap (e.g. R$ 200/week) and check it daily."
	PlanStepCategorize      = "Categorize your expenses (food, transport, housing, etc.) to see where you can optimize."
	PlanStepEssentialBudget = "Create one budget per essential category (e.g. food/transport) and watch when it gets close to the limit (see the budgets command)."

	topCategoryFallback = "top category"
)

var (
	savingTargetRate = decimal.RequireFromString("0.15")
	cutRate          = decimal.RequireFromString("0.15")
)

// BuildPlan returns up to three recommendations for the next month, in a
// fixed order: saving target, top category cut, essential budget.
func BuildPlan(a models.MonthAnalysis) []string {
	income := models.NonNegative(a.Income)
	if income.IsZero() {
		return []string{PlanStepRecordIncome, PlanStepListFixed, PlanStepWeeklyCap}
	}

	plan := make([]string, 0, MaxPlanSteps)

	target := models.NonNegative(income.Mul(savingTargetRate))
	if a.Balance.LessThan(target) {
		gap := target.Sub(models.NonNegative(a.Balance))
		plan = append(plan, fmt.Sprintf(
			"Aim for a 15%% saving rate: try to close the month with at least %s of balance (about %s to go).",
			currencyutils.FormatBRL(target), currencyutils.FormatBRL(gap)))
	} else {
		plan = append(plan, fmt.Sprintf(
			"You are already saving well. Keep at least %s (15%%) and consider raising it gradually.",
			currencyutils.FormatBRL(target)))
	}

	if top, ok := a.TopCategory(); ok {
		name := top.Name
		if name == "" {
			name = topCategoryFallback
		}
		plan = append(plan, fmt.Sprintf(
			"Cut back on %s: try to reduce it by ~15%% (%s) next month (adjust habits and limits).",
			name, currencyutils.FormatBRL(top.Total.Mul(cutRate))))
	} else {
		plan = append(plan, PlanStepCategorize)
	}

	plan = append(plan, PlanStepEssentialBudget)

	if len(plan) > MaxPlanSteps {
		plan = plan[:MaxPlanSteps]
	}
	return plan
}

// FormatPlan renders the plan as copyable text: a header naming the month
// followed by the numbered steps.
func FormatPlan(month models.MonthKey, steps []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Action plan (%s)", month)
	for i, step := range steps {
		fmt.Fprintf(&b, "\n%d. %s", i+1, step)
	}
	return b.String()
}
