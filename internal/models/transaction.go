// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"fjacquet/plannerfin/internal/dateutils"

	"github.com/shopspring/decimal"
)

// TransactionType tells income and expense entries apart.
type TransactionType string

// Transaction is a single recorded (or profile-derived) income or expense.
// The analysis engine never mutates transactions.
type Transaction struct {
	ID            string          `json:"id" yaml:"id"`
	Type          TransactionType `json:"type" yaml:"type"`
	Date          string          `json:"date" yaml:"date"` // YYYY-MM-DD
	Amount        decimal.Decimal `json:"amount" yaml:"amount"`
	CategoryID    string          `json:"category_id" yaml:"category_id"`
	Description   string          `json:"description" yaml:"description"`
	PaymentMethod string          `json:"payment_method" yaml:"payment_method"`
	IsVirtual     bool            `json:"is_virtual,omitempty" yaml:"is_virtual,omitempty"`
}

// IsIncome reports whether the transaction is an income entry.
func (t Transaction) IsIncome() bool {
	return t.Type == TransactionIncome
}

// IsExpense reports whether the transaction is an expense entry.
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionExpense
}

// MonthKey returns the month of the transaction date, or "" when the date is malformed.
func (t Transaction) MonthKey() MonthKey {
	d, err := time.Parse(dateutils.DateLayoutISO, t.Date)
	if err != nil {
		return ""
	}
	return MonthKeyOf(d)
}

// FilterByMonth returns the transactions dated inside month, preserving order.
func FilterByMonth(transactions []Transaction, month MonthKey) []Transaction {
	filtered := make([]Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.MonthKey() == month {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

// FilterByRange returns the transactions dated between startISO and endISO, both inclusive.
func FilterByRange(transactions []Transaction, startISO, endISO string) []Transaction {
	filtered := make([]Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Date >= startISO && tx.Date <= endISO {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}
