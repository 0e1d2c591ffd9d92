package analysis

import (
	"fjacquet/plannerfin/internal/models"

	"github.com/shopspring/decimal"
)

// Alert messages, emitted in this order.
const (
	AlertOverspent        = "You spent more than you earned this month."
	AlertLowSavingRate    = "Your saving rate is low (below 10%)."
	AlertHighExpenseRatio = "Expenses exceed 80% of income (high risk)."
)

var (
	lowSavingThreshold   = decimal.RequireFromString("0.10")
	highExpenseThreshold = decimal.RequireFromString("0.80")
)

// ComputeAlerts derives the qualitative alerts of a month. No alert is raised
// when there is no income, whatever the expenses.
func ComputeAlerts(a models.MonthAnalysis) []string {
	alerts := []string{}

	income := models.NonNegative(a.Income)
	if !income.IsPositive() {
		return alerts
	}
	expense := models.NonNegative(a.Expense)

	if expense.GreaterThan(income) {
		alerts = append(alerts, AlertOverspent)
	}
	if a.SavingRate.LessThan(lowSavingThreshold) {
		alerts = append(alerts, AlertLowSavingRate)
	}
	if expense.Div(income).GreaterThan(highExpenseThreshold) {
		alerts = append(alerts, AlertHighExpenseRatio)
	}
	return alerts
}
