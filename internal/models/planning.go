package models

import "github.com/shopspring/decimal"

// Budget is the spending limit of one category for one month.
type Budget struct {
	MonthKey   MonthKey        `json:"month_key" yaml:"month_key"`
	CategoryID string          `json:"category_id" yaml:"category_id"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
}

// BudgetsConfig is the top-level structure of the budgets YAML file.
type BudgetsConfig struct {
	Budgets []Budget `yaml:"budgets"`
}

// BudgetState classifies how much of a budget has been used.
type BudgetState string

// Budget states
const (
	BudgetStateNone BudgetState = "none"
	BudgetStateOK   BudgetState = "ok"
	BudgetStateWarn BudgetState = "warn"
	BudgetStateOver BudgetState = "over"
)

// BudgetUsage compares a budget with the month's spend in its category.
type BudgetUsage struct {
	CategoryID string          `json:"category_id"`
	Name       string          `json:"name"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Percent    decimal.Decimal `json:"percent"`
	State      BudgetState     `json:"state"`
}

// Goal is a savings goal.
type Goal struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount" yaml:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount" yaml:"current_amount"`
	Deadline      string          `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Notes         string          `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// GoalsConfig is the top-level structure of the goals YAML file.
type GoalsConfig struct {
	Goals []Goal `yaml:"goals"`
}

// GoalProgress is the completion of a savings goal.
type GoalProgress struct {
	Goal      Goal            `json:"goal"`
	Percent   decimal.Decimal `json:"percent"`
	Remaining decimal.Decimal `json:"remaining"`
}
