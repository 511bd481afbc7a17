package calculations

import (
	"fmt"
)

// Layout определяет, как строки графика распределяются по месяцам срока
type Layout string

const (
	// LayoutBaseline: первая строка - исходный остаток без платежа,
	// далее loanMonths-1 реальных платежей. Совпадает с исходным калькулятором.
	LayoutBaseline Layout = "baseline"
	// LayoutFullTerm: loanMonths реальных платежей, остаток в конце сходится к нулю
	LayoutFullTerm Layout = "full"
)

// ParseLayout разбирает строковое имя раскладки
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", LayoutBaseline:
		return LayoutBaseline, nil
	case LayoutFullTerm:
		return LayoutFullTerm, nil
	}
	return "", fmt.Errorf("unknown schedule layout %q", s)
}

type scheduleOptions struct {
	layout Layout
}

// ScheduleOption настраивает GenerateSchedule
type ScheduleOption func(*scheduleOptions)

// WithLayout задает раскладку графика
func WithLayout(layout Layout) ScheduleOption {
	return func(o *scheduleOptions) {
		o.layout = layout
	}
}

// GenerateSchedule строит помесячный график погашения аннуитетного кредита.
// Ежемесячный платеж каждый раз заново вычисляется через CalculatePayment.
func GenerateSchedule(terms LoanTerms, opts ...ScheduleOption) (AmortizationSchedule, error) {
	options := scheduleOptions{layout: LayoutBaseline}
	for _, opt := range opts {
		opt(&options)
	}

	payment, err := CalculatePayment(terms)
	if err != nil {
		return nil, err
	}

	loanAmount := terms.LoanAmount()
	r := terms.MonthlyRate()
	n := terms.LoanMonths()

	schedule := make(AmortizationSchedule, 0, n)
	remaining := loanAmount
	first := 1

	if options.layout != LayoutFullTerm {
		schedule = append(schedule, AmortizationRow{
			Month:            1,
			InterestPayment:  0,
			PrincipalPayment: 0,
			RemainingBalance: loanAmount,
		})
		first = 2
	}

	for m := first; m <= n; m++ {
		interest := remaining * r
		principalComponent := payment.MonthlyPayment - interest
		remaining -= principalComponent

		schedule = append(schedule, AmortizationRow{
			Month:            m,
			InterestPayment:  interest,
			PrincipalPayment: principalComponent,
			RemainingBalance: remaining,
		})
	}

	return schedule, nil
}
