// Package virtualtx materialises transactions from a financial profile.
// The salary becomes an income and every debt amount an expense, all flagged
// IsVirtual, so that a month with few recorded entries still shows realistic
// totals. The analysis engine receives them like any other transaction.
package virtualtx

import (
	"fmt"

	"fjacquet/plannerfin/internal/models"

	"github.com/shopspring/decimal"
)

// PaymentMethod marks the payment method of profile-derived transactions.
const PaymentMethod = "profile"

type entry struct {
	category    string
	txType      models.TransactionType
	amount      decimal.Decimal
	description string
	date        string
}

// FromProfile returns the transactions implied by profile for month, in a
// fixed order: salary, credit card, overdraft, overdue condo, upcoming condo.
// Fields that are not positive produce nothing. The upcoming condo fee is
// dated on its due date when that falls inside month, on the last day otherwise;
// all other entries are dated on the first day. An invalid month yields nil.
func FromProfile(profile models.FinancialProfile, month models.MonthKey) []models.Transaction {
	if !month.Valid() {
		return nil
	}
	first, last := month.FirstDay(), month.LastDay()

	upcomingDate := last
	if due := profile.CondoUpcomingDueDate; due >= first && due <= last {
		upcomingDate = due
	}

	entries := []entry{
		{models.VirtualCategorySalary, models.TransactionIncome, profile.Salary, "Salary", first},
		{models.VirtualCategoryCreditCard, models.TransactionExpense, profile.DebtCreditCard, "Credit card debt", first},
		{models.VirtualCategoryOverdraft, models.TransactionExpense, profile.DebtOverdraft, "Overdraft debt", first},
		{models.VirtualCategoryCondo, models.TransactionExpense, profile.CondoOverdue, "Overdue condo fee", first},
		{models.VirtualCategoryCondo, models.TransactionExpense, profile.CondoUpcoming, "Upcoming condo fee", upcomingDate},
	}

	var transactions []models.Transaction
	for i, e := range entries {
		if !e.amount.IsPositive() {
			continue
		}
		transactions = append(transactions, models.Transaction{
			ID:            fmt.Sprintf("virtual-%s-%d", month, i+1),
			Type:          e.txType,
			Date:          e.date,
			Amount:        e.amount,
			CategoryID:    e.category,
			Description:   e.description,
			PaymentMethod: PaymentMethod,
			IsVirtual:     true,
		})
	}
	return transactions
}

// Blend appends the profile transactions of month to recorded when enabled.
// The recorded slice is never modified.
func Blend(recorded []models.Transaction, profile models.FinancialProfile, month models.MonthKey, enabled bool) []models.Transaction {
	blended := make([]models.Transaction, 0, len(recorded)+5)
	blended = append(blended, recorded...)
	if !enabled {
		return blended
	}
	return append(blended, FromProfile(profile, month)...)
}

// Categories returns display metadata for the virtual category ids.
func Categories() []models.Category {
	return []models.Category{
		{ID: models.VirtualCategorySalary, Name: "Salary (profile)", Kind: models.CategoryKindIncome, Icon: "💼"},
		{ID: models.VirtualCategoryCreditCard, Name: "Credit card (profile)", Kind: models.CategoryKindExpense, Icon: "💳"},
		{ID: models.VirtualCategoryOverdraft, Name: "Overdraft (profile)", Kind: models.CategoryKindExpense, Icon: "🏦"},
		{ID: models.VirtualCategoryCondo, Name: "Condo (profile)", Kind: models.CategoryKindExpense, Icon: "🏢"},
	}
}
