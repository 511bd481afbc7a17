package calculations

// LoanTerms описывает условия кредита, введенные пользователем
type LoanTerms struct {
	Price             float64 `json:"price"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermYears         int     `json:"term_years"`
	DownPayment       float64 `json:"down_payment"`
}

// LoanAmount возвращает сумму кредита (цена минус первоначальный взнос)
func (t LoanTerms) LoanAmount() float64 {
	return t.Price - t.DownPayment
}

// MonthlyRate возвращает месячную ставку в долях
func (t LoanTerms) MonthlyRate() float64 {
	return t.AnnualRatePercent / 100.0 / 12.0
}

// LoanMonths возвращает срок кредита в месяцах
func (t LoanTerms) LoanMonths() int {
	return t.TermYears * 12
}

// PaymentResult представляет ежемесячный платеж и переплату по кредиту
type PaymentResult struct {
	TotalInterestPaid float64 `json:"total_interest_paid"`
	MonthlyPayment    float64 `json:"monthly_payment"`
}

// TotalAmountPaid возвращает общую сумму выплат за весь срок
func (p PaymentResult) TotalAmountPaid(terms LoanTerms) float64 {
	return terms.LoanAmount() + p.TotalInterestPaid
}

// AmortizationRow представляет одну строку графика погашения
type AmortizationRow struct {
	Month            int     `json:"month"`
	InterestPayment  float64 `json:"interest_payment"`
	PrincipalPayment float64 `json:"principal_payment"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// AmortizationSchedule - график погашения, упорядоченный по месяцам
type AmortizationSchedule []AmortizationRow

// Last возвращает последнюю строку графика
func (s AmortizationSchedule) Last() (AmortizationRow, bool) {
	if len(s) == 0 {
		return AmortizationRow{}, false
	}
	return s[len(s)-1], true
}

// TotalPrincipal суммирует погашение основного долга по всем строкам
func (s AmortizationSchedule) TotalPrincipal() float64 {
	total := 0.0
	for _, row := range s {
		total += row.PrincipalPayment
	}
	return total
}

// TotalInterest суммирует проценты по всем строкам
func (s AmortizationSchedule) TotalInterest() float64 {
	total := 0.0
	for _, row := range s {
		total += row.InterestPayment
	}
	return total
}
