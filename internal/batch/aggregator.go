// Package batch merges several transaction exports into one chronological list.
package batch

import (
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/plannerfin/internal/logging"
	"fjacquet/plannerfin/internal/models"
)

// DateRange is the span of ISO dates covered by a set of transactions.
type DateRange struct {
	Start string
	End   string
}

// String returns "start_end", or "" for an empty range.
func (dr DateRange) String() string {
	if dr.Start == "" || dr.End == "" {
		return ""
	}
	return dr.Start + "_" + dr.End
}

// Merge returns the smallest range covering both dr and other.
func (dr DateRange) Merge(other DateRange) DateRange {
	merged := dr
	if merged.Start == "" || (other.Start != "" && other.Start < merged.Start) {
		merged.Start = other.Start
	}
	if merged.End == "" || (other.End != "" && other.End > merged.End) {
		merged.End = other.End
	}
	return merged
}

// LoadFunc loads the transactions of one file.
type LoadFunc func(path string) ([]models.Transaction, error)

// Aggregator combines the transactions of several files.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates a new Aggregator.
func NewAggregator(logger logging.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// AggregateTransactions loads every file with load and returns all
// transactions sorted by date. A file that fails to load is logged and
// skipped; the error is returned only when no file could be loaded.
func (a *Aggregator) AggregateTransactions(files []string, load LoadFunc) ([]models.Transaction, error) {
	var (
		all         []models.Transaction
		sourceFiles []string
		lastErr     error
	)

	for _, file := range files {
		transactions, err := load(file)
		if err != nil {
			a.logger.WithError(err).Error("Failed to load file",
				logging.Field{Key: logging.FieldFile, Value: file})
			lastErr = err
			continue
		}
		all = append(all, transactions...)
		sourceFiles = append(sourceFiles, filepath.Base(file))
	}
	if len(sourceFiles) == 0 && lastErr != nil {
		return nil, lastErr
	}

	SortChronologically(all)
	a.detectAndLogDuplicates(all)

	a.logger.Info("Aggregated transactions",
		logging.Field{Key: logging.FieldCount, Value: len(all)},
		logging.Field{Key: logging.FieldSource, Value: strings.Join(sourceFiles, ", ")},
		logging.Field{Key: "date_range", Value: CalculateDateRange(all).String()})
	return all, nil
}

// SortChronologically orders transactions by date, keeping the file order of
// transactions on the same day.
func SortChronologically(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date < transactions[j].Date
	})
}

// detectAndLogDuplicates warns about transactions that look exported twice.
// They are kept: two identical purchases on one day are legitimate.
func (a *Aggregator) detectAndLogDuplicates(transactions []models.Transaction) {
	duplicateCount := 0
	for i := 0; i < len(transactions)-1; i++ {
		for j := i + 1; j < len(transactions) && transactions[j].Date == transactions[i].Date; j++ {
			if ArePotentialDuplicates(transactions[i], transactions[j]) {
				duplicateCount++
				a.logger.Warn("Potential duplicate transaction",
					logging.Field{Key: "date", Value: transactions[i].Date},
					logging.Field{Key: "amount", Value: transactions[i].Amount.String()},
					logging.Field{Key: logging.FieldTransactionID, Value: transactions[j].ID})
				break
			}
		}
	}

	if duplicateCount > 0 {
		a.logger.Warn("Found potential duplicate transactions",
			logging.Field{Key: logging.FieldCount, Value: duplicateCount})
	}
}

// ArePotentialDuplicates reports whether two transactions share date, type,
// amount, category and description.
func ArePotentialDuplicates(tx1, tx2 models.Transaction) bool {
	return tx1.Date == tx2.Date &&
		tx1.Type == tx2.Type &&
		tx1.Amount.Equal(tx2.Amount) &&
		tx1.CategoryID == tx2.CategoryID &&
		strings.EqualFold(strings.TrimSpace(tx1.Description), strings.TrimSpace(tx2.Description))
}

// CalculateDateRange returns the range of dates in transactions.
func CalculateDateRange(transactions []models.Transaction) DateRange {
	var dr DateRange
	for _, tx := range transactions {
		dr = dr.Merge(DateRange{Start: tx.Date, End: tx.Date})
	}
	return dr
}
