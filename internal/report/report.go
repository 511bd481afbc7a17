package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/cloud-ru/loan-amortization-go/internal/calculations"
)

// TableHeader - заголовки колонок табличного представления графика
var TableHeader = []string{"Month", "Interest Payment", "Principal Payment", "Remaining Balance"}

// TableRow - строка графика, округленная до копеек для вывода
type TableRow struct {
	Month            int    `json:"month"`
	InterestPayment  string `json:"interest_payment"`
	PrincipalPayment string `json:"principal_payment"`
	RemainingBalance string `json:"remaining_balance"`
}

// Money округляет сумму до 2 знаков и форматирует ее с фиксированной точкой
func Money(value float64) string {
	return decimal.NewFromFloat(value).Round(2).StringFixed(2)
}

// Summary возвращает однострочную сводку по переплате
func Summary(payment calculations.PaymentResult) string {
	return fmt.Sprintf("The total amount of interest paid over the life of the loan is: $%s", Money(payment.TotalInterestPaid))
}

// Table переводит график в строки таблицы
func Table(schedule calculations.AmortizationSchedule) []TableRow {
	rows := make([]TableRow, 0, len(schedule))
	for _, row := range schedule {
		rows = append(rows, TableRow{
			Month:            row.Month,
			InterestPayment:  Money(row.InterestPayment),
			PrincipalPayment: Money(row.PrincipalPayment),
			RemainingBalance: Money(row.RemainingBalance),
		})
	}
	return rows
}

// WriteText печатает сводку и таблицу графика в текстовом виде
func WriteText(w io.Writer, payment calculations.PaymentResult, schedule calculations.AmortizationSchedule) error {
	if _, err := fmt.Fprintln(w, Summary(payment)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Monthly payment: $%s\n\n", Money(payment.MonthlyPayment)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%6s %18s %18s %18s\n", TableHeader[0], TableHeader[1], TableHeader[2], TableHeader[3]); err != nil {
		return err
	}
	for _, row := range Table(schedule) {
		if _, err := fmt.Fprintf(w, "%6d %18s %18s %18s\n",
			row.Month, row.InterestPayment, row.PrincipalPayment, row.RemainingBalance); err != nil {
			return err
		}
	}
	return nil
}

// WritePDF выводит сводку и график погашения в PDF документ
func WritePDF(w io.Writer, terms calculations.LoanTerms, payment calculations.PaymentResult, schedule calculations.AmortizationSchedule) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Car Loan Amortization Schedule", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(40, 10, "Car Loan Amortization Schedule")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		"Price: $" + Money(terms.Price),
		"Down payment: $" + Money(terms.DownPayment),
		"Loan amount: $" + Money(terms.LoanAmount()),
		fmt.Sprintf("Annual rate: %s%%", decimal.NewFromFloat(terms.AnnualRatePercent).String()),
		fmt.Sprintf("Term: %d years (%d months)", terms.TermYears, terms.LoanMonths()),
		"Monthly payment: $" + Money(payment.MonthlyPayment),
		"Total interest: $" + Money(payment.TotalInterestPaid),
		"Total amount paid: $" + Money(payment.TotalAmountPaid(terms)),
	}
	for _, line := range lines {
		pdf.Cell(60, 8, line)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	widths := []float64{20, 45, 45, 45}
	pdf.SetFont("Helvetica", "B", 10)
	for i, title := range TableHeader {
		pdf.CellFormat(widths[i], 7, title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range Table(schedule) {
		pdf.CellFormat(widths[0], 6, strconv.Itoa(row.Month), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, row.InterestPayment, "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, row.PrincipalPayment, "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, row.RemainingBalance, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
