package analysis

import (
	"fmt"

	"fjacquet/plannerfin/internal/currencyutils"
	"fjacquet/plannerfin/internal/models"

	"github.com/shopspring/decimal"
)

// MaxDebtPlanSteps bounds the debt plan.
const MaxDebtPlanSteps = 7

// DebtStepCutNonEssential closes the debt plan of a month with income.
const DebtStepCutNonEssential = "Cut non-essential spending and review your subscriptions to free up money for your debts."

var suggestedDebtShare = decimal.RequireFromString("0.30")

// BuildDebtPlan orders the debt payoff steps: condo arrears, the upcoming
// condo fee, overdraft, credit card, a monthly debt reservation and a spending
// review. A step is present only when its triggering amount is positive. The
// reservation step quotes the user's target, or 30% of the salary when no
// target is set.
func BuildDebtPlan(p models.DebtProfile, a models.MonthAnalysis) []string {
	plan := make([]string, 0, MaxDebtPlanSteps)

	if p.CondoOverdue.IsPositive() {
		plan = append(plan, fmt.Sprintf(
			"Pay the overdue condo fee (%s) right away to stop fines and interest.",
			currencyutils.FormatBRL(p.CondoOverdue)))
	}

	if p.CondoUpcoming.IsPositive() {
		due := "by the due date"
		if p.CondoUpcomingDueDate != "" {
			due = "by " + p.CondoUpcomingDueDate
		}
		plan = append(plan, fmt.Sprintf(
			"Reserve %s for the upcoming condo fee %s.",
			currencyutils.FormatBRL(p.CondoUpcoming), due))
	}

	if p.DebtOverdraft.IsPositive() {
		plan = append(plan, fmt.Sprintf(
			"Attack the overdraft first (%s): it is usually the most expensive debt.",
			currencyutils.FormatBRL(p.DebtOverdraft)))
	}

	if p.DebtCreditCard.IsPositive() {
		plan = append(plan, fmt.Sprintf(
			"Then pay down the credit card (%s) and avoid new installment purchases meanwhile.",
			currencyutils.FormatBRL(p.DebtCreditCard)))
	}

	switch {
	case p.DebtPaymentTarget.IsPositive():
		plan = append(plan, fmt.Sprintf(
			"Reserve a fixed %s every month for debt payments.",
			currencyutils.FormatBRL(p.DebtPaymentTarget)))
	case p.Salary.IsPositive():
		suggested := p.Salary.Mul(suggestedDebtShare).Round(0)
		plan = append(plan, fmt.Sprintf(
			"Set a monthly debt payment target: about %s (30%% of your %s salary).",
			currencyutils.FormatBRL(suggested), currencyutils.FormatBRL(p.Salary)))
	}

	if a.Income.IsPositive() {
		plan = append(plan, DebtStepCutNonEssential)
	}

	if len(plan) > MaxDebtPlanSteps {
		plan = plan[:MaxDebtPlanSteps]
	}
	return plan
}
