package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/plannerfin/internal/analysis"
	"fjacquet/plannerfin/internal/currencyutils"
	"fjacquet/plannerfin/internal/logging"
	"fjacquet/plannerfin/internal/models"
	"fjacquet/plannerfin/internal/validation"
)

// Generator renders reports.
type Generator struct {
	logger logging.Logger
	symbol string
}

// NewGenerator creates a new Generator. Amounts in tables use symbol.
func NewGenerator(logger logging.Logger, symbol string) *Generator {
	return &Generator{
		logger: logger.WithField("component", "ReportGenerator"),
		symbol: symbol,
	}
}

// Generate renders the report in the specified format (text or json).
func (g *Generator) Generate(report *Report, format string) ([]byte, error) {
	if err := validation.IsValidOutputFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case validation.FormatJSON:
		return g.generateJSON(report)
	default:
		return g.generateText(report)
	}
}

func (g *Generator) generateJSON(report *Report) ([]byte, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *Generator) generateText(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	sections := []func(io.Writer, *Report){
		g.writeSummary,
		g.writeAlerts,
		g.writeTopCategories,
		g.writePlan,
		g.writeDebtPlan,
		g.writeSuggestions,
		g.writeBudgets,
		g.writeGoals,
		g.writeNonEssential,
		g.writeNarrative,
	}

	fmt.Fprintf(&buf, "Month %s\n", report.Month)
	for _, section := range sections {
		section(&buf, report)
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(w io.Writer, r *Report) {
	if r.Analysis == nil {
		return
	}
	a := r.Analysis
	fmt.Fprintln(w)
	if r.Score != nil {
		fmt.Fprintf(w, "Score: %d (%s)\n", r.Score.Value, r.Score.Label)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Income\t%s\n", currencyutils.FormatAmount(a.Income, g.symbol))
	fmt.Fprintf(tw, "Expenses\t%s\n", currencyutils.FormatAmount(a.Expense, g.symbol))
	fmt.Fprintf(tw, "Balance\t%s\n", currencyutils.FormatAmount(a.Balance, g.symbol))
	fmt.Fprintf(tw, "Saving rate\t%s\n", currencyutils.FormatPercent(a.SavingRate))
	_ = tw.Flush()
}

func (g *Generator) writeAlerts(w io.Writer, r *Report) {
	if r.Analysis == nil {
		return
	}
	fmt.Fprintln(w, "\nAlerts")
	if len(r.Analysis.Alerts) == 0 {
		fmt.Fprintln(w, "  No critical alerts.")
		return
	}
	for _, alert := range r.Analysis.Alerts {
		fmt.Fprintf(w, "  - %s\n", alert)
	}
}

func (g *Generator) writeTopCategories(w io.Writer, r *Report) {
	if r.Analysis == nil {
		return
	}
	fmt.Fprintln(w, "\nTop expense categories")
	if len(r.Analysis.TopCategories) == 0 {
		fmt.Fprintln(w, "  No expenses yet.")
		return
	}
	g.writeTotals(w, r.Analysis.TopCategories)
}

func (g *Generator) writeTotals(w io.Writer, totals []models.CategoryTotal) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range totals {
		fmt.Fprintf(tw, "  %s\t%s\n", c.Label(), currencyutils.FormatAmount(c.Total, g.symbol))
	}
	_ = tw.Flush()
}

func (g *Generator) writePlan(w io.Writer, r *Report) {
	if len(r.Plan) == 0 {
		return
	}
	fmt.Fprintln(w, "\nAction plan")
	writeNumbered(w, r.Plan)
}

func (g *Generator) writeDebtPlan(w io.Writer, r *Report) {
	if r.DebtPlan == nil {
		return
	}
	fmt.Fprintln(w, "\nDebt plan")
	if len(r.DebtPlan) == 0 {
		fmt.Fprintln(w, "  No debts registered in the profile.")
		return
	}
	writeNumbered(w, r.DebtPlan)
}

func (g *Generator) writeSuggestions(w io.Writer, r *Report) {
	if r.Suggestions == nil {
		return
	}
	fmt.Fprintf(w, "\nBudget suggestions (%s, +10%%)\n", r.Suggestions.Label)
	if len(r.Suggestions.Items) == 0 {
		fmt.Fprintln(w, "  Not enough data in the window.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Category\tAverage\tSuggested")
	for _, item := range r.Suggestions.Items {
		total := models.CategoryTotal{CategoryID: item.CategoryID, Name: item.Name}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", total.Label(),
			currencyutils.FormatAmount(item.AverageSpend, g.symbol),
			currencyutils.FormatAmount(item.SuggestedAmount, g.symbol))
	}
	_ = tw.Flush()
}

func (g *Generator) writeBudgets(w io.Writer, r *Report) {
	if r.Budgets == nil {
		return
	}
	fmt.Fprintln(w, "\nBudgets")
	if len(r.Budgets) == 0 {
		fmt.Fprintln(w, "  No expense categories.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Category\tSpent\tLimit\tUsed\tStatus")
	for _, u := range r.Budgets {
		limit, used := "-", ""
		if u.State != models.BudgetStateNone {
			limit = currencyutils.FormatAmount(u.Limit, g.symbol)
			used = u.Percent.Round(0).String() + "%"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", u.Name,
			currencyutils.FormatAmount(u.Spent, g.symbol), limit, used, u.State)
	}
	_ = tw.Flush()
}

func (g *Generator) writeGoals(w io.Writer, r *Report) {
	if r.Goals == nil {
		return
	}
	fmt.Fprintln(w, "\nGoals")
	if len(r.Goals) == 0 {
		fmt.Fprintln(w, "  No goals yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Goal\tSaved\tTarget\tDone\tRemaining\tDeadline")
	for _, p := range r.Goals {
		deadline := p.Goal.Deadline
		if deadline == "" {
			deadline = "-"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s%%\t%s\t%s\n", p.Goal.Name,
			currencyutils.FormatAmount(p.Goal.CurrentAmount, g.symbol),
			currencyutils.FormatAmount(p.Goal.TargetAmount, g.symbol),
			p.Percent.Round(0).String(),
			currencyutils.FormatAmount(p.Remaining, g.symbol),
			deadline)
	}
	_ = tw.Flush()

	goals := make([]models.Goal, 0, len(r.Goals))
	for _, p := range r.Goals {
		goals = append(goals, p.Goal)
	}
	fmt.Fprintf(w, "  Total saved: %s\n", currencyutils.FormatAmount(analysis.TotalSaved(goals), g.symbol))
}

func (g *Generator) writeNonEssential(w io.Writer, r *Report) {
	if len(r.NonEssential) == 0 {
		return
	}
	fmt.Fprintln(w, "\nSpending outside essential categories")
	g.writeTotals(w, r.NonEssential)
}

func (g *Generator) writeNarrative(w io.Writer, r *Report) {
	if r.Narrative == "" {
		return
	}
	fmt.Fprintf(w, "\nAdvisor notes\n  %s\n", strings.ReplaceAll(r.Narrative, "\n", "\n  "))
}

func writeNumbered(w io.Writer, steps []string) {
	for i, step := range steps {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
}

// CopyablePlan returns the action plan of the report as plain numbered text.
func CopyablePlan(r *Report) string {
	return analysis.FormatPlan(r.Month, r.Plan)
}
