package validators

import (
	"fmt"

	"github.com/cloud-ru/loan-amortization-go/internal/calculations"
	"github.com/cloud-ru/loan-amortization-go/internal/config"
	"github.com/cloud-ru/loan-amortization-go/pkg/utils"
)

// ValidateNumber проверяет, что число конечное и в допустимом диапазоне
func ValidateNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%s: значение не является конечным числом", name)
	}
	if value < minInclusive {
		return fmt.Errorf("%s: значение должно быть ≥ %.0f", name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%s: значение слишком велико (>%.0f)", name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: значение должно быть в диапазоне [%d; %d]", name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckPrice проверяет цену автомобиля
func CheckPrice(cfg *config.Config, price float64) error {
	return ValidateNumber("price", price, 0.0, cfg.MaxPrice)
}

// CheckRate проверяет годовую процентную ставку
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidateNumber("annual_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckDownPayment проверяет первоначальный взнос
func CheckDownPayment(cfg *config.Config, downPayment float64) error {
	return ValidateNumber("down_payment", downPayment, 0.0, cfg.MaxPrice)
}

// CheckYears проверяет верхнюю границу срока кредита.
// Нулевой срок отклоняется расчетным ядром как ErrInvalidTerm.
func CheckYears(cfg *config.Config, years int) error {
	return ValidateIntRange("term_years", years, 0, cfg.MaxYears)
}

// CheckTerms выполняет все проверки условий кредита на границе сервиса
func CheckTerms(cfg *config.Config, terms calculations.LoanTerms) error {
	if err := CheckPrice(cfg, terms.Price); err != nil {
		return err
	}
	if err := CheckRate(cfg, terms.AnnualRatePercent); err != nil {
		return err
	}
	if err := CheckYears(cfg, terms.TermYears); err != nil {
		return err
	}
	if err := CheckDownPayment(cfg, terms.DownPayment); err != nil {
		return err
	}
	return calculations.Validate(terms)
}
