// Package narrator turns a computed month report into a short plain-language
// commentary using a generative model. The numbers always come from the
// analysis engine; the model only rephrases them.
package narrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/plannerfin/internal/currencyutils"
	"fjacquet/plannerfin/internal/logging"
	"fjacquet/plannerfin/internal/models"
)

// ErrDisabled is returned by a Narrator built without a client.
var ErrDisabled = errors.New("AI narration is disabled")

// Input is the already computed data the narration is based on.
type Input struct {
	Analysis models.MonthAnalysis
	Score    int
	Label    string
	Plan     []string
	DebtPlan []string
}

// Narrator produces narrative summaries through an AIClient.
type Narrator struct {
	client  AIClient
	timeout time.Duration
	logger  logging.Logger
}

// New creates a Narrator. A nil client yields a Narrator that always returns
// ErrDisabled; a non-positive timeout means no deadline beyond ctx.
func New(client AIClient, timeout time.Duration, logger logging.Logger) *Narrator {
	return &Narrator{client: client, timeout: timeout, logger: logger}
}

// Enabled reports whether narration can run.
func (n *Narrator) Enabled() bool {
	return n != nil && n.client != nil
}

// Narrate asks the model for a short commentary on in.
func (n *Narrator) Narrate(ctx context.Context, in Input) (string, error) {
	if !n.Enabled() {
		return "", ErrDisabled
	}
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := n.client.Generate(ctx, BuildPrompt(in))
	if err != nil {
		n.logger.WithError(err).Warn("AI narration failed",
			logging.Field{Key: logging.FieldMonth, Value: in.Analysis.MonthKey.String()})
		return "", fmt.Errorf("failed to narrate %s: %w", in.Analysis.MonthKey, err)
	}
	n.logger.Debug("AI narration done",
		logging.Field{Key: logging.FieldMonth, Value: in.Analysis.MonthKey.String()},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).String()})
	return strings.TrimSpace(text), nil
}

// BuildPrompt renders the prompt sent to the model.
func BuildPrompt(in Input) string {
	a := in.Analysis
	var b strings.Builder

	b.WriteString("You are a personal finance advisor. Write a short, friendly commentary ")
	b.WriteString("(at most 5 sentences) on the month below. Use only the figures given, ")
	b.WriteString("do not invent numbers, and keep amounts in the same format.\n\n")

	fmt.Fprintf(&b, "Month: %s\n", a.MonthKey)
	fmt.Fprintf(&b, "Income: %s\n", currencyutils.FormatBRL(a.Income))
	fmt.Fprintf(&b, "Expenses: %s\n", currencyutils.FormatBRL(a.Expense))
	fmt.Fprintf(&b, "Balance: %s\n", currencyutils.FormatBRL(a.Balance))
	fmt.Fprintf(&b, "Saving rate: %s\n", currencyutils.FormatPercent(a.SavingRate))
	fmt.Fprintf(&b, "Health score: %d/100 (%s)\n", in.Score, in.Label)

	if len(a.TopCategories) > 0 {
		b.WriteString("Top expense categories:\n")
		for _, c := range a.TopCategories {
			fmt.Fprintf(&b, "- %s: %s\n", c.Label(), currencyutils.FormatBRL(c.Total))
		}
	}
	writeList(&b, "Alerts", a.Alerts)
	writeList(&b, "Action plan", in.Plan)
	writeList(&b, "Debt plan", in.DebtPlan)
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
