package analysis

import (
	"fjacquet/plannerfin/internal/models"

	"github.com/shopspring/decimal"
)

var (
	budgetWarnPercent = decimal.NewFromInt(80)
	budgetOverPercent = decimal.NewFromInt(100)
	budgetPercentCap  = decimal.NewFromInt(999)
	hundred           = decimal.NewFromInt(100)
)

// ClassifyBudget returns the used share of a limit, in percent capped at 999,
// and its state. A limit that is not positive means no budget.
func ClassifyBudget(spent, limit decimal.Decimal) (decimal.Decimal, models.BudgetState) {
	if !limit.IsPositive() {
		return decimal.Zero, models.BudgetStateNone
	}
	pct := models.NonNegative(spent).Div(limit).Mul(hundred)
	if pct.GreaterThan(budgetPercentCap) {
		pct = budgetPercentCap
	}
	switch {
	case pct.GreaterThanOrEqual(budgetOverPercent):
		return pct, models.BudgetStateOver
	case pct.GreaterThanOrEqual(budgetWarnPercent):
		return pct, models.BudgetStateWarn
	default:
		return pct, models.BudgetStateOK
	}
}

// BudgetStatus compares the month's spend with the month's budgets for every
// expense category, in category order. Categories without a budget are
// reported with state none. Transactions and budgets of other months are
// ignored.
func BudgetStatus(transactions []models.Transaction, categories []models.Category, budgets []models.Budget, month models.MonthKey) []models.BudgetUsage {
	spent := make(map[string]decimal.Decimal)
	for _, tx := range models.FilterByMonth(transactions, month) {
		if tx.IsExpense() {
			spent[tx.CategoryID] = spent[tx.CategoryID].Add(models.NonNegative(tx.Amount))
		}
	}

	limits := make(map[string]decimal.Decimal)
	for _, b := range budgets {
		if b.MonthKey == month {
			limits[b.CategoryID] = models.NonNegative(b.Amount)
		}
	}

	usage := make([]models.BudgetUsage, 0, len(categories))
	for _, c := range categories {
		if c.Kind == models.CategoryKindIncome {
			continue
		}
		limit := limits[c.ID]
		pct, state := ClassifyBudget(spent[c.ID], limit)
		usage = append(usage, models.BudgetUsage{
			CategoryID: c.ID,
			Name:       c.Name,
			Limit:      limit,
			Spent:      spent[c.ID],
			Percent:    pct,
			State:      state,
		})
	}
	return usage
}
