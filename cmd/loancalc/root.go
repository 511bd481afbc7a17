package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "loancalc",
		Short: "Car loan payment and amortization calculator",
		Long: `loancalc computes the fixed monthly payment, total interest and the
month-by-month amortization schedule of a fixed-rate car loan.
Run "loancalc serve" for the HTTP API or "loancalc calc" for a one-shot report.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newCalcCmd())
	return root
}
