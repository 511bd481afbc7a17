package charts

import (
	"testing"

	"github.com/cloud-ru/loan-amortization-go/internal/calculations"
)

func TestInterestPrincipalSeries(t *testing.T) {
	terms := calculations.LoanTerms{Price: 20000, AnnualRatePercent: 5, TermYears: 5, DownPayment: 2000}
	schedule, err := calculations.GenerateSchedule(terms)
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}

	chart := InterestPrincipalSeries(schedule)
	if len(chart.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(chart.Series))
	}
	if chart.Series[0].Name != InterestSeriesName || chart.Series[1].Name != PrincipalSeriesName {
		t.Errorf("unexpected series names %q, %q", chart.Series[0].Name, chart.Series[1].Name)
	}
	for _, s := range chart.Series {
		if len(s.Points) != 60 {
			t.Errorf("%s: expected 60 points, got %d", s.Name, len(s.Points))
		}
		if s.Points[0].X != 1 || s.Points[0].Y != 0 {
			t.Errorf("%s: expected first point (1, 0), got %+v", s.Name, s.Points[0])
		}
	}

	interest := chart.Series[0].Points
	principal := chart.Series[1].Points
	if interest[1].Y != 75 {
		t.Errorf("expected interest 75 at month 2, got %f", interest[1].Y)
	}
	if interest[59].Y >= interest[1].Y {
		t.Error("interest should decrease over time")
	}
	if principal[59].Y <= principal[1].Y {
		t.Error("principal should increase over time")
	}
}

func TestTotalPaidVsPrice(t *testing.T) {
	terms := calculations.LoanTerms{Price: 20000, AnnualRatePercent: 5, TermYears: 5, DownPayment: 2000}
	payment, err := calculations.CalculatePayment(terms)
	if err != nil {
		t.Fatalf("CalculatePayment() error = %v", err)
	}

	pie := TotalPaidVsPrice(terms, payment)
	if pie.Hole != 0.4 {
		t.Errorf("expected hole 0.4, got %f", pie.Hole)
	}
	if len(pie.Slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(pie.Slices))
	}
	if pie.Slices[0].Label != TotalPaidLabel || pie.Slices[0].Value != 20380.93 {
		t.Errorf("unexpected total paid slice %+v", pie.Slices[0])
	}
	if pie.Slices[1].Label != PriceLabel || pie.Slices[1].Value != 20000 {
		t.Errorf("unexpected price slice %+v", pie.Slices[1])
	}
}
