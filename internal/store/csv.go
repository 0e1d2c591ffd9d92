package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"fjacquet/plannerfin/internal/batch"
	"fjacquet/plannerfin/internal/currencyutils"
	"fjacquet/plannerfin/internal/dateutils"
	"fjacquet/plannerfin/internal/fileutils"
	"fjacquet/plannerfin/internal/loaderror"
	"fjacquet/plannerfin/internal/logging"
	"fjacquet/plannerfin/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

// TransactionRow is one row of the transactions CSV export.
type TransactionRow struct {
	ID            string `csv:"id"`
	Type          string `csv:"type"`
	Date          string `csv:"date"`
	Amount        string `csv:"amount"`
	CategoryID    string `csv:"category_id"`
	Description   string `csv:"description"`
	PaymentMethod string `csv:"payment_method"`
}

// SuggestionRow is one row of the budget suggestions CSV export.
type SuggestionRow struct {
	MonthKey     string `csv:"month"`
	CategoryID   string `csv:"category_id"`
	Name         string `csv:"name"`
	AverageSpend string `csv:"average_spend"`
	Suggested    string `csv:"suggested_amount"`
	Window       string `csv:"window"`
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
func ReadCSVFile[TCSVRow any](filePath string, delimiter rune) ([]TCSVRow, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, &loaderror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "CSV with a header row",
			Msg:            err.Error(),
		}
	}
	return rows, nil
}

// WriteCSVFile writes rows with a header line, creating parent directories.
func WriteCSVFile[TCSVRow any](filePath string, delimiter rune, rows []TCSVRow) error {
	file, err := fileutils.CreateFile(filePath)
	if err != nil {
		return &loaderror.WriteError{FilePath: filePath, Err: err}
	}
	defer func() {
		_ = file.Close()
	}()

	writer := csv.NewWriter(file)
	writer.Comma = delimiter
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return &loaderror.WriteError{FilePath: filePath, Err: err}
	}
	return nil
}

// LoadTransactions reads the transactions CSV. When the configured path is a
// directory, every CSV file inside it is loaded and merged chronologically.
// Rows with an unknown type or an unreadable date are skipped with a warning;
// an unreadable amount loads as zero so the row still counts but contributes
// nothing.
func (s *FileStore) LoadTransactions() ([]models.Transaction, error) {
	path := s.ResolvePath(s.paths.Transactions)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("transactions file %s: %w", path, loaderror.ErrNotFound)
		}
		return nil, fmt.Errorf("error checking transactions file: %w", err)
	}
	if !info.IsDir() {
		return s.loadTransactionFile(path)
	}

	files, err := fileutils.ListFilesWithExtension(path, ".csv")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CSV files in %s: %w", path, loaderror.ErrNotFound)
	}
	return batch.NewAggregator(s.logger).AggregateTransactions(files, s.loadTransactionFile)
}

func (s *FileStore) loadTransactionFile(path string) ([]models.Transaction, error) {
	rows, err := ReadCSVFile[TransactionRow](path, s.delimiter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to read transactions",
			logging.Field{Key: logging.FieldFile, Value: path})
		return nil, err
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		// Header is line 1.
		tx, err := convertRow(path, i+2, row)
		if err != nil {
			s.logger.WithError(err).Warn("Skipping transaction row",
				logging.Field{Key: logging.FieldFile, Value: path},
				logging.Field{Key: logging.FieldTransactionID, Value: row.ID})
			continue
		}

		amount, err := currencyutils.ParseAmount(row.Amount)
		if err != nil {
			s.logger.WithError(&loaderror.ParseError{Source: path, Line: i + 2, Field: "amount", Value: row.Amount, Err: err}).
				Warn("Unreadable amount, counting it as zero",
					logging.Field{Key: logging.FieldTransactionID, Value: row.ID})
		}
		tx.Amount = amount
		transactions = append(transactions, tx)
	}

	s.logger.Info("Loaded transactions",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions, nil
}

func convertRow(path string, line int, row TransactionRow) (models.Transaction, error) {
	txType := models.TransactionType(strings.ToLower(strings.TrimSpace(row.Type)))
	if txType != models.TransactionIncome && txType != models.TransactionExpense {
		return models.Transaction{}, &loaderror.ParseError{
			Source: path, Line: line, Field: "type", Value: row.Type,
			Err: errors.New("must be 'income' or 'expense'"),
		}
	}

	date, err := dateutils.NormalizeISODate(row.Date)
	if err != nil {
		return models.Transaction{}, &loaderror.ParseError{
			Source: path, Line: line, Field: "date", Value: row.Date, Err: err,
		}
	}

	id := strings.TrimSpace(row.ID)
	if id == "" {
		id = rowID(path, line)
	}

	return models.Transaction{
		ID:            id,
		Type:          txType,
		Date:          date,
		CategoryID:    strings.TrimSpace(row.CategoryID),
		Description:   row.Description,
		PaymentMethod: row.PaymentMethod,
	}, nil
}

// rowID derives a stable id for a row exported without one, unique across
// the files of a directory.
func rowID(path string, line int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("file://%s#%d", path, line))).String()
}

// WriteSuggestionsCSV exports budget suggestions for month.
func (s *FileStore) WriteSuggestionsCSV(filePath string, month models.MonthKey, suggestions models.BudgetSuggestions) error {
	return writeSuggestionsCSV(filePath, s.delimiter, month, suggestions, s.logger)
}

func writeSuggestionsCSV(filePath string, delimiter rune, month models.MonthKey, suggestions models.BudgetSuggestions, logger logging.Logger) error {
	rows := make([]SuggestionRow, 0, len(suggestions.Items))
	for _, item := range suggestions.Items {
		rows = append(rows, SuggestionRow{
			MonthKey:     month.String(),
			CategoryID:   item.CategoryID,
			Name:         item.Name,
			AverageSpend: item.AverageSpend.StringFixed(2),
			Suggested:    item.SuggestedAmount.StringFixed(2),
			Window:       suggestions.Label,
		})
	}
	if err := WriteCSVFile(filePath, delimiter, rows); err != nil {
		return err
	}
	logger.Info("Exported budget suggestions",
		logging.Field{Key: logging.FieldOutputFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}
