// Package analysis implements the monthly financial analysis and planning
// engine: aggregation, alerts, health score, action plan, debt plan and budget
// suggestions.
//
// Every function is pure. Inputs are passed explicitly, nothing is read from
// the environment or the wall clock, and the same inputs always produce the
// same outputs. Non-positive amounts contribute zero and never cause errors.
package analysis

import (
	"sort"

	"fjacquet/plannerfin/internal/models"

	"github.com/shopspring/decimal"
)

// TopCategoryLimit is the maximum number of categories reported in MonthAnalysis.TopCategories.
const TopCategoryLimit = 5

// Aggregate reduces transactions into income, expense, balance, saving rate
// and the largest expense categories. It does not filter by date: the caller
// scopes transactions to the month first. Alerts are left empty; AnalyzeMonth
// fills them.
func Aggregate(transactions []models.Transaction, categories []models.Category, month models.MonthKey) models.MonthAnalysis {
	income := decimal.Zero
	expense := decimal.Zero
	for _, tx := range transactions {
		amount := models.NonNegative(tx.Amount)
		switch {
		case tx.IsIncome():
			income = income.Add(amount)
		case tx.IsExpense():
			expense = expense.Add(amount)
		}
	}

	balance := income.Sub(expense)

	top := expenseTotals(transactions, models.IndexCategories(categories), nil)
	if len(top) > TopCategoryLimit {
		top = top[:TopCategoryLimit]
	}

	return models.MonthAnalysis{
		MonthKey:      month,
		Income:        income,
		Expense:       expense,
		Balance:       balance,
		SavingRate:    models.Ratio(balance, income),
		TopCategories: top,
		Alerts:        []string{},
	}
}

// AnalyzeMonth aggregates the transactions and attaches the alerts.
func AnalyzeMonth(transactions []models.Transaction, categories []models.Category, month models.MonthKey) models.MonthAnalysis {
	analysis := Aggregate(transactions, categories, month)
	analysis.Alerts = ComputeAlerts(analysis)
	return analysis
}

// expenseTotals sums expenses per category, skipping ids in exclude.
// Categories keep the order of their first expense, then a stable sort puts
// the largest totals first. Categories whose total is zero are dropped.
func expenseTotals(transactions []models.Transaction, index map[string]models.Category, exclude map[string]struct{}) []models.CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		if _, skip := exclude[tx.CategoryID]; skip {
			continue
		}
		if _, seen := totals[tx.CategoryID]; !seen {
			order = append(order, tx.CategoryID)
		}
		totals[tx.CategoryID] = totals[tx.CategoryID].Add(models.NonNegative(tx.Amount))
	}

	result := make([]models.CategoryTotal, 0, len(order))
	for _, id := range order {
		total := totals[id]
		if !total.IsPositive() {
			continue
		}
		entry := models.CategoryTotal{CategoryID: id, Total: total}
		if cat, ok := index[id]; ok {
			entry.Name = cat.Name
			entry.Icon = cat.Icon
		}
		result = append(result, entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})
	return result
}
