package models

// Transaction types
const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Category kinds
const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
	CategoryKindBoth    CategoryKind = "both"
)

// Budget suggestion windows
const (
	SuggestionMonthly   SuggestionMode = "monthly"
	SuggestionQuarterly SuggestionMode = "quarterly"
)

// Categories
const (
	// CategoryUncategorized labels totals whose category id has no metadata.
	CategoryUncategorized = "Uncategorized"
	// CategoryDefaultIcon is shown next to categories that carry no icon.
	CategoryDefaultIcon = "🏷️"
)

// Identifiers of the virtual categories used by profile-derived transactions.
const (
	VirtualCategorySalary     = "virtual:salary"
	VirtualCategoryCreditCard = "virtual:credit-card"
	VirtualCategoryOverdraft  = "virtual:overdraft"
	VirtualCategoryCondo      = "virtual:condo"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
)
