// Package debtplan implements the debt payoff plan command
package debtplan

import (
	"fjacquet/plannerfin/cmd/common"

	"github.com/spf13/cobra"
)

// Cmd represents the debt-plan command
var Cmd = &cobra.Command{
	Use:   "debt-plan",
	Short: "Build a debt payoff plan from your financial profile",
	Long: `Build an ordered debt payoff plan from the debts of your financial profile:
overdue condo fee, upcoming condo fee, overdraft, credit card, then a monthly
payment target taken from your preferences or derived from your salary.`,
	RunE: debtPlanFunc,
}

func debtPlanFunc(cmd *cobra.Command, args []string) error {
	ctx, err := common.Prepare()
	if err != nil {
		return err
	}
	r, err := ctx.Service.DebtPlan(ctx.Month)
	if err != nil {
		return err
	}
	return ctx.WriteReport(cmd.OutOrStdout(), r)
}
