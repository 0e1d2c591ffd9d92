// Package report assembles the outputs of the analysis engine into one
// document and renders it as text or JSON.
package report

import (
	"encoding/json"

	"fjacquet/plannerfin/internal/analysis"
	"fjacquet/plannerfin/internal/models"
)

// Score is a health score with its display band.
type Score struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Report is the document printed by the commands. A nil section was not
// computed and is omitted from the output. The debt plan, budgets and goals
// sections are kept even when computed empty, in text and in JSON alike.
type Report struct {
	Month        models.MonthKey           `json:"month"`
	Analysis     *models.MonthAnalysis     `json:"analysis,omitempty"`
	Score        *Score                    `json:"score,omitempty"`
	Plan         []string                  `json:"plan,omitempty"`
	DebtPlan     []string                  `json:"debt_plan,omitempty"`
	Suggestions  *models.BudgetSuggestions `json:"suggestions,omitempty"`
	Budgets      []models.BudgetUsage      `json:"budgets,omitempty"`
	Goals        []models.GoalProgress     `json:"goals,omitempty"`
	NonEssential []models.CategoryTotal    `json:"non_essential,omitempty"`
	Narrative    string                    `json:"narrative,omitempty"`
}

// MarshalJSON renders computed but empty list sections as [] instead of
// dropping them.
func (r Report) MarshalJSON() ([]byte, error) {
	type plain Report
	out := struct {
		plain
		DebtPlan *[]string              `json:"debt_plan,omitempty"`
		Budgets  *[]models.BudgetUsage  `json:"budgets,omitempty"`
		Goals    *[]models.GoalProgress `json:"goals,omitempty"`
	}{plain: plain(r)}
	if r.DebtPlan != nil {
		out.DebtPlan = &r.DebtPlan
	}
	if r.Budgets != nil {
		out.Budgets = &r.Budgets
	}
	if r.Goals != nil {
		out.Goals = &r.Goals
	}
	return json.Marshal(out)
}

// New returns an empty report for month.
func New(month models.MonthKey) *Report {
	return &Report{Month: month}
}

// WithAnalysis attaches the month analysis together with its score and plan.
func (r *Report) WithAnalysis(a models.MonthAnalysis) *Report {
	score := analysis.ComputeScore(a)
	r.Analysis = &a
	r.Score = &Score{Value: score, Label: analysis.ScoreLabel(score)}
	r.Plan = analysis.BuildPlan(a)
	return r
}

// WithDebtPlan attaches the debt payoff plan built from profile and the
// month analysis a.
func (r *Report) WithDebtPlan(profile models.DebtProfile, a models.MonthAnalysis) *Report {
	r.DebtPlan = analysis.BuildDebtPlan(profile, a)
	return r
}

// WithSuggestions attaches budget suggestions.
func (r *Report) WithSuggestions(s models.BudgetSuggestions) *Report {
	r.Suggestions = &s
	return r
}

// WithBudgets attaches the budget status rows.
func (r *Report) WithBudgets(usage []models.BudgetUsage) *Report {
	r.Budgets = usage
	return r
}

// WithGoals attaches the goals progress.
func (r *Report) WithGoals(progress []models.GoalProgress) *Report {
	r.Goals = progress
	return r
}

// WithNonEssential attaches the spending outside essential categories.
func (r *Report) WithNonEssential(totals []models.CategoryTotal) *Report {
	r.NonEssential = totals
	return r
}
