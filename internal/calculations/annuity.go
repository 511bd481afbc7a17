package calculations

import (
	"math"

	"github.com/cloud-ru/loan-amortization-go/pkg/utils"
)

// CalculatePayment рассчитывает аннуитетный ежемесячный платеж и переплату по кредиту.
// Округление не выполняется: до копеек значения округляются только при выводе.
func CalculatePayment(terms LoanTerms) (PaymentResult, error) {
	if err := Validate(terms); err != nil {
		return PaymentResult{}, err
	}

	P := terms.LoanAmount()
	r := terms.MonthlyRate()
	n := terms.LoanMonths()

	var monthlyPayment float64
	if r == 0.0 {
		monthlyPayment = P / float64(n)
	} else {
		// P*r*g/(g-1) при g=(1+r)^n, записано как P*r/(1-(1+r)^-n).
		// Log1p/Expm1 не теряют точность при r близком к нулю и не переполняются при больших n*r.
		discount := -math.Expm1(-float64(n) * math.Log1p(r))
		monthlyPayment = P * (r / discount)
	}

	if !utils.IsFinite(monthlyPayment) {
		return PaymentResult{}, &TermsError{Field: "monthly_payment", Value: monthlyPayment, Err: ErrInvalidInput}
	}

	// при r >= 0 переплата не отрицательна, минус здесь только шум округления
	totalInterest := math.Max(monthlyPayment*float64(n)-P, 0)

	return PaymentResult{
		TotalInterestPaid: totalInterest,
		MonthlyPayment:    monthlyPayment,
	}, nil
}
