package calculations

import (
	"errors"
	"fmt"

	"github.com/cloud-ru/loan-amortization-go/pkg/utils"
)

var (
	// ErrInvalidTerm - срок кредита равен нулю или отрицателен
	ErrInvalidTerm = errors.New("invalid loan term")
	// ErrInvalidAmount - первоначальный взнос превышает цену
	ErrInvalidAmount = errors.New("invalid loan amount")
	// ErrInvalidInput - отрицательное или не конечное значение
	ErrInvalidInput = errors.New("invalid input")
)

// TermsError описывает, какое поле условий кредита не прошло проверку
type TermsError struct {
	Field string
	Value float64
	Err   error
}

func (e *TermsError) Error() string {
	return fmt.Sprintf("%s: %v (%g)", e.Field, e.Err, e.Value)
}

func (e *TermsError) Unwrap() error {
	return e.Err
}

// Validate проверяет условия кредита до начала расчета.
// Ее вызывают и CalculatePayment, и GenerateSchedule, поэтому обе функции
// отклоняют одни и те же входные данные.
func Validate(terms LoanTerms) error {
	values := []struct {
		field string
		value float64
	}{
		{"price", terms.Price},
		{"annual_rate_percent", terms.AnnualRatePercent},
		{"down_payment", terms.DownPayment},
	}
	for _, v := range values {
		if !utils.IsFinite(v.value) || v.value < 0 {
			return &TermsError{Field: v.field, Value: v.value, Err: ErrInvalidInput}
		}
	}

	if terms.TermYears <= 0 {
		return &TermsError{Field: "term_years", Value: float64(terms.TermYears), Err: ErrInvalidTerm}
	}

	if terms.DownPayment > terms.Price {
		return &TermsError{Field: "down_payment", Value: terms.DownPayment, Err: ErrInvalidAmount}
	}

	return nil
}
