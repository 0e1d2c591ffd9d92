package analysis

import (
	"sort"

	"fjacquet/plannerfin/internal/models"

	"github.com/shopspring/decimal"
)

// MaxSuggestions bounds the number of budget suggestions.
const MaxSuggestions = 5

// Window labels
const (
	LabelPreviousMonth   = "previous month"
	LabelTrailingQuarter = "trailing 3-month average"
)

var suggestionMarkup = decimal.RequireFromString("1.1")

// Suggest proposes budgets for month from the expense history of the months
// before it. The monthly mode averages the previous month, the quarterly mode
// the three previous months; missing months count as zero spend. Each
// suggestion is the average plus 10%, ranked by amount, top five.
//
// Unknown modes use the monthly window. An invalid month yields no items.
func Suggest(month models.MonthKey, mode models.SuggestionMode, history models.ExpenseHistory, categories []models.Category) models.BudgetSuggestions {
	if mode != models.SuggestionQuarterly {
		mode = models.SuggestionMonthly
	}
	label := LabelPreviousMonth
	if mode == models.SuggestionQuarterly {
		label = LabelTrailingQuarter
	}

	size := mode.WindowSize()
	window := month.PreviousN(size)
	result := models.BudgetSuggestions{
		Items:  []models.BudgetSuggestion{},
		Label:  label,
		Mode:   mode,
		Window: window,
	}
	if len(window) == 0 {
		return result
	}

	sums := make(map[string]decimal.Decimal)
	for _, m := range window {
		for id, total := range history[m] {
			sums[id] = sums[id].Add(models.NonNegative(total))
		}
	}

	divisor := decimal.NewFromInt(int64(size))
	index := models.IndexCategories(categories)
	for _, id := range candidateIDs(categories, sums) {
		average := sums[id].Div(divisor)
		if !average.IsPositive() {
			continue
		}
		result.Items = append(result.Items, models.BudgetSuggestion{
			CategoryID:      id,
			Name:            index[id].Name,
			AverageSpend:    average,
			SuggestedAmount: average.Mul(suggestionMarkup),
		})
	}

	sort.SliceStable(result.Items, func(i, j int) bool {
		return result.Items[i].SuggestedAmount.GreaterThan(result.Items[j].SuggestedAmount)
	})
	if len(result.Items) > MaxSuggestions {
		result.Items = result.Items[:MaxSuggestions]
	}
	return result
}

// candidateIDs lists the ids of categories with history, in category order.
// Ids that only appear in the history belong to deleted categories and are
// never suggested.
func candidateIDs(categories []models.Category, sums map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(categories))
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		if _, ok := sums[c.ID]; ok {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
