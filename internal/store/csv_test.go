package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/plannerfin/internal/loaderror"
	"fjacquet/plannerfin/internal/logging"
	"fjacquet/plannerfin/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTransactions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, DefaultTransactionsFile), `id,type,date,amount,category_id,description,payment_method
t1,income,2026-02-05,"R$ 5.000,00",salary,Salary,transfer
t2,Expense,10/02/2026,1234.56,food,Groceries,card
t3,expense,2026-02-11,abc,food,Broken amount,card
t4,transfer,2026-02-12,10,food,Unknown type,card
t5,expense,not a date,10,food,Bad date,card
,expense,2026-02-13,"99,90",transport,Bus,cash
`)
	s, logger := newTestStore(dir)

	txs, err := s.LoadTransactions()
	require.NoError(t, err)
	require.Len(t, txs, 4)

	assert.Equal(t, models.TransactionIncome, txs[0].Type)
	assert.True(t, decimal.NewFromInt(5000).Equal(txs[0].Amount))

	assert.Equal(t, models.TransactionExpense, txs[1].Type)
	assert.Equal(t, "2026-02-10", txs[1].Date)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(txs[1].Amount))

	assert.Equal(t, "t3", txs[2].ID)
	assert.True(t, txs[2].Amount.IsZero())

	assert.Equal(t, rowID(filepath.Join(dir, DefaultTransactionsFile), 7), txs[3].ID)
	_, err = uuid.Parse(txs[3].ID)
	assert.NoError(t, err)
	assert.True(t, decimal.RequireFromString("99.90").Equal(txs[3].Amount))

	assert.Len(t, logger.GetEntriesByLevel("WARN"), 3)
	assert.True(t, logger.HasEntry("INFO", "Loaded transactions"))
}

func TestLoadTransactions_Semicolon(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "export.csv"), "id;type;date;amount;category_id\nt1;expense;2026-02-01;12,50;food\n")
	s := NewFileStore(Paths{Directory: dir, Transactions: "export.csv"}, ';', logging.NewMockLogger())

	txs, err := s.LoadTransactions()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, decimal.RequireFromString("12.5").Equal(txs[0].Amount))
}

func TestLoadTransactions_Missing(t *testing.T) {
	s, _ := newTestStore(t.TempDir())

	_, err := s.LoadTransactions()

	assert.True(t, errors.Is(err, loaderror.ErrNotFound))
}

func TestLoadTransactions_Directory(t *testing.T) {
	dir := t.TempDir()
	exports := filepath.Join(dir, "exports")
	require.NoError(t, os.Mkdir(exports, 0750))
	header := "id,type,date,amount,category_id\n"
	writeFile(t, filepath.Join(exports, "2026-02.csv"), header+"f1,expense,2026-02-03,10,food\n")
	writeFile(t, filepath.Join(exports, "2026-01.csv"), header+"j1,expense,2026-01-20,20,food\nj2,expense,2026-02-03,10,food\n")
	writeFile(t, filepath.Join(exports, "readme.txt"), "ignored")
	s, logger := newTestStore(dir)
	s.paths.Transactions = "exports"

	txs, err := s.LoadTransactions()
	require.NoError(t, err)

	require.Len(t, txs, 3)
	assert.Equal(t, "j1", txs[0].ID)
	assert.Equal(t, "j2", txs[1].ID)
	assert.Equal(t, "f1", txs[2].ID)
	assert.True(t, logger.HasEntry("WARN", "Potential duplicate transaction"))
}

func TestLoadTransactions_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "exports"), 0750))
	s, _ := newTestStore(dir)
	s.paths.Transactions = "exports"

	_, err := s.LoadTransactions()

	assert.True(t, errors.Is(err, loaderror.ErrNotFound))
}

func TestLoadTransactions_Empty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, DefaultTransactionsFile), "")
	s, _ := newTestStore(dir)

	_, err := s.LoadTransactions()

	var formatErr *loaderror.InvalidFormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestWriteSuggestionsCSV(t *testing.T) {
	dir := t.TempDir()
	s, _ := newTestStore(dir)
	out := filepath.Join(dir, "out", "suggestions.csv")
	suggestions := models.BudgetSuggestions{
		Label: "previous month",
		Items: []models.BudgetSuggestion{
			{CategoryID: "food", Name: "Food", AverageSpend: decimal.NewFromInt(300), SuggestedAmount: decimal.NewFromInt(330)},
		},
	}

	require.NoError(t, s.WriteSuggestionsCSV(out, "2026-02", suggestions))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "month,category_id,name,average_spend,suggested_amount,window", lines[0])
	assert.Equal(t, "2026-02,food,Food,300.00,330.00,previous month", lines[1])

	rows, err := ReadCSVFile[SuggestionRow](out, ',')
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "330.00", rows[0].Suggested)
}
