// Package report implements the full month report command
package report

import (
	"context"
	"fmt"

	"fjacquet/plannerfin/cmd/common"
	"fjacquet/plannerfin/internal/consultor"
	monthreport "fjacquet/plannerfin/internal/report"

	"github.com/spf13/cobra"
)

var (
	mode     string
	withAI   bool
	copyPlan bool
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Print the full month report",
	Long: `Print everything plannerfin knows about the selected month in one document:
analysis, health score, action plan, debt plan, budget suggestions, budget
status, goals and the spending outside essential categories. Use --ai for a
short narrative written by Gemini, or --copy-plan to print only the action
plan as plain numbered text.`,
	RunE: reportFunc,
}

func init() {
	Cmd.Flags().StringVar(&mode, "mode", "", "Suggestion window: monthly or quarterly")
	Cmd.Flags().BoolVar(&withAI, "ai", false, "Add a narrative generated by the AI model")
	Cmd.Flags().BoolVar(&copyPlan, "copy-plan", false, "Print only the action plan as plain text")
}

func reportFunc(cmd *cobra.Command, args []string) error {
	ctx, err := common.Prepare()
	if err != nil {
		return err
	}
	selected, err := common.ParseModeFlag(mode)
	if err != nil {
		return err
	}

	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}
	r, err := ctx.Service.Report(runCtx, ctx.Month, consultor.ReportOptions{
		Mode:      selected,
		Narrative: withAI && !copyPlan,
	})
	if err != nil {
		return err
	}

	if copyPlan {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), monthreport.CopyablePlan(r))
		return err
	}
	return ctx.WriteReport(cmd.OutOrStdout(), r)
}
