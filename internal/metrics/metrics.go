package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_tool_calls_total",
			Help: "Общее количество вызовов расчетных инструментов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"tool_name", "error_type"},
	)

	// APICalls счетчик HTTP запросов
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_api_calls_total",
			Help: "Вызовы HTTP API",
		},
		[]string{"endpoint", "status"},
	)

	// ScheduleMonths распределение длины построенных графиков
	ScheduleMonths = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loan_schedule_months",
			Help:    "Количество строк в построенных графиках погашения",
			Buckets: []float64{12, 24, 36, 48, 60, 84, 120, 240, 360, 600},
		},
	)
)
