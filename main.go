package main

import (
	"fmt"
	"os"

	"fjacquet/plannerfin/cmd/analyze"
	"fjacquet/plannerfin/cmd/budgets"
	"fjacquet/plannerfin/cmd/debtplan"
	"fjacquet/plannerfin/cmd/goals"
	"fjacquet/plannerfin/cmd/report"
	"fjacquet/plannerfin/cmd/root"
	"fjacquet/plannerfin/cmd/suggest"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(debtplan.Cmd)
	root.Cmd.AddCommand(suggest.Cmd)
	root.Cmd.AddCommand(budgets.Cmd)
	root.Cmd.AddCommand(goals.Cmd)
	root.Cmd.AddCommand(report.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
