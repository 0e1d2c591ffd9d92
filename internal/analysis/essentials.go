package analysis

import "fjacquet/plannerfin/internal/models"

// NonEssentialSpending lists expense totals per category, largest first,
// leaving out the essential categories. The essential set is the one given
// now; a category reclassified later changes past months too.
func NonEssentialSpending(transactions []models.Transaction, categories []models.Category, essential map[string]struct{}) []models.CategoryTotal {
	return expenseTotals(transactions, models.IndexCategories(categories), essential)
}
