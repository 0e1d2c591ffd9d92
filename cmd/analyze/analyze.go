// Package analyze implements the month analysis command
package analyze

import (
	"fjacquet/plannerfin/cmd/common"

	"github.com/spf13/cobra"
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a month: totals, saving rate, health score, alerts and action plan",
	Long: `Analyze the selected month from the recorded transactions, blended with the
salary and debts of your financial profile when enabled. Prints the totals,
the saving rate, the health score, the alerts, the top expense categories and
a short action plan.`,
	RunE: analyzeFunc,
}

func analyzeFunc(cmd *cobra.Command, args []string) error {
	ctx, err := common.Prepare()
	if err != nil {
		return err
	}
	r, err := ctx.Service.Analyze(ctx.Month)
	if err != nil {
		return err
	}
	return ctx.WriteReport(cmd.OutOrStdout(), r)
}
