// Package suggest implements the budget suggestion command
package suggest

import (
	"fjacquet/plannerfin/cmd/common"
	"fjacquet/plannerfin/cmd/root"
	"fjacquet/plannerfin/internal/logging"
	"fjacquet/plannerfin/internal/report"
	"fjacquet/plannerfin/internal/validation"

	"github.com/spf13/cobra"
)

var (
	mode    string
	apply   bool
	csvFile string
)

// Cmd represents the suggest command
var Cmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest budgets from your recent spending",
	Long: `Suggest a budget per expense category for the selected month: the average
spend of the previous month (monthly) or of the three previous months
(quarterly), plus a 10% margin. Use --apply to store them as the month's
budgets and --csv to export them.`,
	RunE: suggestFunc,
}

func init() {
	Cmd.Flags().StringVar(&mode, "mode", "", "Suggestion window: monthly or quarterly (default: from configuration or preferences)")
	Cmd.Flags().BoolVar(&apply, "apply", false, "Save the suggestions as the month's budgets")
	Cmd.Flags().StringVar(&csvFile, "csv", "", "Export the suggestions to a CSV file")
}

func suggestFunc(cmd *cobra.Command, args []string) error {
	ctx, err := common.Prepare()
	if err != nil {
		return err
	}
	selected, err := common.ParseModeFlag(mode)
	if err != nil {
		return err
	}
	if csvFile != "" {
		if err := validation.IsValidOutputPath(csvFile); err != nil {
			return err
		}
	}

	suggestions, err := ctx.Service.Suggest(ctx.Month, selected)
	if err != nil {
		return err
	}

	if apply {
		if err := ctx.Service.ApplySuggestions(ctx.Month, suggestions); err != nil {
			return err
		}
	}
	if csvFile != "" {
		if err := ctx.Service.ExportSuggestions(csvFile, ctx.Month, suggestions); err != nil {
			return err
		}
		root.Log.Info("Suggestions exported", logging.Field{Key: logging.FieldOutputFile, Value: csvFile})
	}

	return ctx.WriteReport(cmd.OutOrStdout(), report.New(ctx.Month).WithSuggestions(suggestions))
}
