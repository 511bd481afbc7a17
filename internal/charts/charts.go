// Package charts готовит данные графиков для UI: линии процентов и основного
// долга по месяцам и круговую диаграмму "общая сумма выплат против цены".
// Отрисовка остается на стороне клиента.
package charts

import (
	"github.com/cloud-ru/loan-amortization-go/internal/calculations"
	"github.com/cloud-ru/loan-amortization-go/pkg/utils"
)

const (
	InterestSeriesName  = "Interest Payment"
	PrincipalSeriesName = "Principal Payment"
	TotalPaidLabel      = "Total Amount Paid (with Interest)"
	PriceLabel          = "Car Price"
)

// Point - точка линейного графика
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series - именованный ряд точек
type Series struct {
	Name   string  `json:"name"`
	Mode   string  `json:"mode"`
	Points []Point `json:"points"`
}

// LineChart - линейный график с подписью осей
type LineChart struct {
	Title  string   `json:"title"`
	XAxis  string   `json:"xaxis_title"`
	YAxis  string   `json:"yaxis_title"`
	Series []Series `json:"series"`
}

// Slice - сектор круговой диаграммы
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// PieChart - круговая диаграмма (Hole > 0 дает кольцевую)
type PieChart struct {
	Title  string  `json:"title"`
	Hole   float64 `json:"hole"`
	Slices []Slice `json:"slices"`
}

// Charts объединяет оба графика для одного ответа
type Charts struct {
	Line LineChart `json:"line"`
	Pie  PieChart  `json:"pie"`
}

// InterestPrincipalSeries строит ряды процентов и основного долга по месяцам графика
func InterestPrincipalSeries(schedule calculations.AmortizationSchedule) LineChart {
	interest := make([]Point, 0, len(schedule))
	principal := make([]Point, 0, len(schedule))

	for _, row := range schedule {
		month := float64(row.Month)
		interest = append(interest, Point{X: month, Y: utils.Round2(row.InterestPayment)})
		principal = append(principal, Point{X: month, Y: utils.Round2(row.PrincipalPayment)})
	}

	return LineChart{
		Title: "Interest and Principal Payments Over Time",
		XAxis: "Month",
		YAxis: "Amount ($)",
		Series: []Series{
			{Name: InterestSeriesName, Mode: "lines", Points: interest},
			{Name: PrincipalSeriesName, Mode: "lines", Points: principal},
		},
	}
}

// TotalPaidVsPrice сравнивает общую сумму выплат по кредиту с ценой автомобиля
func TotalPaidVsPrice(terms calculations.LoanTerms, payment calculations.PaymentResult) PieChart {
	return PieChart{
		Title: "Comparison of Total Amount Paid with and without Interest",
		Hole:  0.4,
		Slices: []Slice{
			{Label: TotalPaidLabel, Value: utils.Round2(payment.TotalAmountPaid(terms))},
			{Label: PriceLabel, Value: utils.Round2(terms.Price)},
		},
	}
}

// Build строит оба графика
func Build(terms calculations.LoanTerms, payment calculations.PaymentResult, schedule calculations.AmortizationSchedule) Charts {
	return Charts{
		Line: InterestPrincipalSeries(schedule),
		Pie:  TotalPaidVsPrice(terms, payment),
	}
}
