// Package goals implements the savings goals command
package goals

import (
	"fjacquet/plannerfin/cmd/common"
	"fjacquet/plannerfin/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the goals command
var Cmd = &cobra.Command{
	Use:   "goals",
	Short: "Show the progress of your savings goals",
	RunE:  goalsFunc,
}

func goalsFunc(cmd *cobra.Command, args []string) error {
	ctx, err := common.Prepare()
	if err != nil {
		return err
	}
	progress, err := ctx.Service.Goals()
	if err != nil {
		return err
	}
	return ctx.WriteReport(cmd.OutOrStdout(), report.New(ctx.Month).WithGoals(progress))
}
