// Package budgets implements the budget status command
package budgets

import (
	"fjacquet/plannerfin/cmd/common"
	"fjacquet/plannerfin/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the budgets command
var Cmd = &cobra.Command{
	Use:   "budgets",
	Short: "Compare the month's spending with your budgets",
	Long: `List every expense category with what was spent in the selected month, its
budget and the share used: ok below 80%, warn from 80%, over from 100%.`,
	RunE: budgetsFunc,
}

func budgetsFunc(cmd *cobra.Command, args []string) error {
	ctx, err := common.Prepare()
	if err != nil {
		return err
	}
	usage, err := ctx.Service.Budgets(ctx.Month)
	if err != nil {
		return err
	}
	return ctx.WriteReport(cmd.OutOrStdout(), report.New(ctx.Month).WithBudgets(usage))
}
