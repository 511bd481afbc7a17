// Package api отдает расчеты кредита по HTTP для браузерного UI.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cloud-ru/loan-amortization-go/internal/config"
	"github.com/cloud-ru/loan-amortization-go/internal/metrics"
	"github.com/cloud-ru/loan-amortization-go/internal/report"
	"github.com/cloud-ru/loan-amortization-go/internal/tools"
)

const maxBodyBytes = 1 << 16

// Server - HTTP сервер калькулятора
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	limiter  *RateLimiter
	payment  tools.ToolHandler
	schedule tools.ToolHandler
	charts   tools.ToolHandler
}

// NewServer создает сервер; limiter может быть nil
func NewServer(cfg *config.Config, tracer trace.Tracer, logger *zap.Logger, limiter *RateLimiter) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		limiter:  limiter,
		payment:  tools.LoanPaymentHandler(cfg, tracer, logger),
		schedule: tools.LoanScheduleHandler(cfg, tracer, logger),
		charts:   tools.LoanChartsHandler(cfg, tracer, logger),
	}
}

// Handler возвращает chi роутер со всеми маршрутами
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1/loan", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(RateLimitMiddleware(s.limiter))
		}
		r.Post("/payment", s.toolEndpoint("payment", s.payment))
		r.Post("/schedule", s.toolEndpoint("schedule", s.schedule))
		r.Post("/charts", s.toolEndpoint("charts", s.charts))
		r.Post("/schedule.pdf", s.handleSchedulePDF)
	})

	if s.cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) toolEndpoint(endpoint string, handler tools.ToolHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, ok := s.decodeParams(w, r, endpoint)
		if !ok {
			return
		}

		result, err := handler(r.Context(), params)
		if err != nil {
			s.writeToolError(w, r, endpoint, err)
			return
		}

		metrics.APICalls.WithLabelValues(endpoint, "success").Inc()
		s.writeJSON(w, r, http.StatusOK, result)
	}
}

func (s *Server) handleSchedulePDF(w http.ResponseWriter, r *http.Request) {
	const endpoint = "schedule_pdf"

	params, ok := s.decodeParams(w, r, endpoint)
	if !ok {
		return
	}

	result, err := s.schedule(r.Context(), params)
	if err != nil {
		s.writeToolError(w, r, endpoint, err)
		return
	}
	out := result.(*tools.ScheduleOutput)

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, out.Terms, out.Payment, out.Schedule); err != nil {
		s.writeToolError(w, r, endpoint, err)
		return
	}

	metrics.APICalls.WithLabelValues(endpoint, "success").Inc()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="amortization.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) decodeParams(w http.ResponseWriter, r *http.Request, endpoint string) (map[string]interface{}, bool) {
	var params map[string]interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&params); err != nil {
		metrics.APICalls.WithLabelValues(endpoint, "bad_request").Inc()
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return params, true
}

func (s *Server) writeToolError(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	if errors.Is(err, tools.ErrInvalidParams) {
		metrics.APICalls.WithLabelValues(endpoint, "bad_request").Inc()
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	metrics.APICalls.WithLabelValues(endpoint, "error").Inc()
	s.logger.Error("request failed",
		zap.String("op", endpoint),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	s.writeError(w, r, http.StatusInternalServerError, "internal error")
}

// writeJSON кодирует ответ целиком до отправки заголовков
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.Error("encode response failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		buf.Reset()
		buf.WriteString(`{"error":"internal error"}` + "\n")
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Debug("write response failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, r, status, map[string]string{"error": msg})
}
