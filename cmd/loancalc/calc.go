package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/loan-amortization-go/internal/calculations"
	"github.com/cloud-ru/loan-amortization-go/internal/config"
	"github.com/cloud-ru/loan-amortization-go/internal/report"
	"github.com/cloud-ru/loan-amortization-go/internal/validators"
)

type calcOptions struct {
	terms   calculations.LoanTerms
	layout  string
	table   bool
	pdfPath string
}

func newCalcCmd() *cobra.Command {
	opts := &calcOptions{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate payment and amortization schedule for one loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.terms.Price, "price", 0, "Car price")
	cmd.Flags().Float64Var(&opts.terms.AnnualRatePercent, "rate", 0, "Annual interest rate, percent")
	cmd.Flags().IntVar(&opts.terms.TermYears, "years", 0, "Loan term in years")
	cmd.Flags().Float64Var(&opts.terms.DownPayment, "down", 0, "Down payment amount")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "Schedule layout: baseline or full (default from SCHEDULE_LAYOUT)")
	cmd.Flags().BoolVar(&opts.table, "table", false, "Print the amortization table")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "Write the amortization table to a PDF file")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("years")

	return cmd
}

func runCalc(cmd *cobra.Command, opts *calcOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	layoutName := opts.layout
	if layoutName == "" {
		layoutName = cfg.ScheduleLayout
	}
	layout, err := calculations.ParseLayout(layoutName)
	if err != nil {
		return err
	}

	if err := validators.CheckTerms(cfg, opts.terms); err != nil {
		return fmt.Errorf("неверные параметры: %w", err)
	}

	payment, err := calculations.CalculatePayment(opts.terms)
	if err != nil {
		return err
	}
	schedule, err := calculations.GenerateSchedule(opts.terms, calculations.WithLayout(layout))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.table {
		if err := report.WriteText(out, payment, schedule); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, report.Summary(payment))
		fmt.Fprintf(out, "Monthly payment: $%s\n", report.Money(payment.MonthlyPayment))
	}

	if opts.pdfPath != "" {
		f, err := os.Create(opts.pdfPath)
		if err != nil {
			return fmt.Errorf("create pdf: %w", err)
		}
		defer f.Close()
		if err := report.WritePDF(f, opts.terms, payment, schedule); err != nil {
			return err
		}
		fmt.Fprintf(out, "Amortization table written to %s\n", opts.pdfPath)
	}

	return nil
}
