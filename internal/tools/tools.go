package tools

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cloud-ru/loan-amortization-go/internal/calculations"
	"github.com/cloud-ru/loan-amortization-go/internal/charts"
	"github.com/cloud-ru/loan-amortization-go/internal/config"
	"github.com/cloud-ru/loan-amortization-go/internal/metrics"
	"github.com/cloud-ru/loan-amortization-go/internal/report"
	"github.com/cloud-ru/loan-amortization-go/internal/validators"
)

const (
	ToolLoanPayment  = "loan_payment"
	ToolLoanSchedule = "loan_amortization_schedule"
	ToolLoanCharts   = "loan_charts"
)

// ErrInvalidParams - входные параметры не прошли разбор или проверку
var ErrInvalidParams = errors.New("неверные параметры")

// ToolHandler представляет обработчик расчетного инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// PaymentOutput - результат инструмента loan_payment
type PaymentOutput struct {
	calculations.PaymentResult
	Terms           calculations.LoanTerms `json:"terms"`
	LoanAmount      float64                `json:"loan_amount"`
	TotalAmountPaid float64                `json:"total_amount_paid"`
	Summary         string                 `json:"summary"`
}

// ScheduleOutput - результат инструмента loan_amortization_schedule
type ScheduleOutput struct {
	Terms    calculations.LoanTerms            `json:"terms"`
	Payment  calculations.PaymentResult        `json:"payment"`
	Layout   calculations.Layout               `json:"layout"`
	Schedule calculations.AmortizationSchedule `json:"schedule"`
}

// ParseTerms извлекает условия кредита из параметров запроса.
// down_payment необязателен и по умолчанию равен нулю.
func ParseTerms(params map[string]interface{}) (calculations.LoanTerms, error) {
	price, ok := params["price"].(float64)
	if !ok {
		return calculations.LoanTerms{}, fmt.Errorf("%w: price", ErrInvalidParams)
	}
	rate, ok := params["annual_rate_percent"].(float64)
	if !ok {
		return calculations.LoanTerms{}, fmt.Errorf("%w: annual_rate_percent", ErrInvalidParams)
	}
	yearsFloat, ok := params["term_years"].(float64)
	if !ok {
		return calculations.LoanTerms{}, fmt.Errorf("%w: term_years", ErrInvalidParams)
	}
	if math.Abs(yearsFloat) > math.MaxInt32 || yearsFloat != math.Trunc(yearsFloat) {
		return calculations.LoanTerms{}, fmt.Errorf("%w: term_years должен быть целым", ErrInvalidParams)
	}
	downPayment := 0.0
	if raw, exists := params["down_payment"]; exists && raw != nil {
		downPayment, ok = raw.(float64)
		if !ok {
			return calculations.LoanTerms{}, fmt.Errorf("%w: down_payment", ErrInvalidParams)
		}
	}

	return calculations.LoanTerms{
		Price:             price,
		AnnualRatePercent: rate,
		TermYears:         int(yearsFloat),
		DownPayment:       downPayment,
	}, nil
}

// parseLayout берет раскладку из параметров, иначе из конфигурации
func parseLayout(cfg *config.Config, params map[string]interface{}) (calculations.Layout, error) {
	name := cfg.ScheduleLayout
	if raw, exists := params["layout"]; exists && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return "", fmt.Errorf("%w: layout", ErrInvalidParams)
		}
		name = s
	}
	layout, err := calculations.ParseLayout(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return layout, nil
}

func termsAttributes(terms calculations.LoanTerms) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Float64("price", terms.Price),
		attribute.Float64("annual_rate_percent", terms.AnnualRatePercent),
		attribute.Int("term_years", terms.TermYears),
		attribute.Float64("down_payment", terms.DownPayment),
	}
}

func rejectParams(span trace.Span, logger *zap.Logger, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "validation_error"))
	span.RecordError(err)
	metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "validation").Inc()
	logger.Info("rejected loan terms", zap.String("op", toolName), zap.Error(err))
	if errors.Is(err, ErrInvalidParams) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidParams, err)
}

func failCalculation(span trace.Span, logger *zap.Logger, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "calculation_error"))
	span.RecordError(err)
	metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "calculation").Inc()
	logger.Error("loan calculation failed", zap.String("op", toolName), zap.Error(err))
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}

// LoanPaymentHandler обрабатывает запрос на расчет ежемесячного платежа и переплаты
func LoanPaymentHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolLoanPayment

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		terms, err := ParseTerms(params)
		if err != nil {
			return nil, rejectParams(span, logger, toolName, err)
		}
		span.SetAttributes(termsAttributes(terms)...)

		if err := validators.CheckTerms(cfg, terms); err != nil {
			return nil, rejectParams(span, logger, toolName, err)
		}

		result, err := calculations.CalculatePayment(terms)
		if err != nil {
			return nil, failCalculation(span, logger, toolName, err)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("monthly_payment", result.MonthlyPayment),
			attribute.Float64("total_interest_paid", result.TotalInterestPaid),
		)
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
		logger.Debug("loan payment calculated",
			zap.String("op", toolName),
			zap.Float64("monthly_payment", result.MonthlyPayment),
		)

		return &PaymentOutput{
			PaymentResult:   result,
			Terms:           terms,
			LoanAmount:      terms.LoanAmount(),
			TotalAmountPaid: result.TotalAmountPaid(terms),
			Summary:         report.Summary(result),
		}, nil
	}
}

// LoanScheduleHandler обрабатывает запрос на построение графика погашения
func LoanScheduleHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolLoanSchedule

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		terms, err := ParseTerms(params)
		if err != nil {
			return nil, rejectParams(span, logger, toolName, err)
		}
		span.SetAttributes(termsAttributes(terms)...)

		layout, err := parseLayout(cfg, params)
		if err != nil {
			return nil, rejectParams(span, logger, toolName, err)
		}
		span.SetAttributes(attribute.String("layout", string(layout)))

		if err := validators.CheckTerms(cfg, terms); err != nil {
			return nil, rejectParams(span, logger, toolName, err)
		}

		payment, err := calculations.CalculatePayment(terms)
		if err != nil {
			return nil, failCalculation(span, logger, toolName, err)
		}
		schedule, err := calculations.GenerateSchedule(terms, calculations.WithLayout(layout))
		if err != nil {
			return nil, failCalculation(span, logger, toolName, err)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("rows", len(schedule)),
		)
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
		metrics.ScheduleMonths.Observe(float64(len(schedule)))
		logger.Debug("amortization schedule generated",
			zap.String("op", toolName),
			zap.String("layout", string(layout)),
			zap.Int("rows", len(schedule)),
		)

		return &ScheduleOutput{
			Terms:    terms,
			Payment:  payment,
			Layout:   layout,
			Schedule: schedule,
		}, nil
	}
}

// LoanChartsHandler обрабатывает запрос на данные графиков
func LoanChartsHandler(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) ToolHandler {
	scheduleHandler := LoanScheduleHandler(cfg, tracer, logger)

	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolLoanCharts

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		out, err := scheduleHandler(ctx, params)
		if err != nil {
			span.SetAttributes(attribute.String("error", "schedule_error"))
			metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
			return nil, err
		}
		scheduleOut := out.(*ScheduleOutput)

		span.SetAttributes(attribute.Bool("success", true))
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()

		result := charts.Build(scheduleOut.Terms, scheduleOut.Payment, scheduleOut.Schedule)
		return &result, nil
	}
}
