package api

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cloud-ru/loan-amortization-go/internal/config"
)

func newTestServer(limiter *RateLimiter) http.Handler {
	cfg := &config.Config{
		MaxPrice:       1e9,
		MaxRate:        100,
		MaxYears:       50,
		ScheduleLayout: "baseline",
		MetricsEnabled: true,
	}
	return NewServer(cfg, noop.NewTracerProvider().Tracer("test"), zap.NewNop(), limiter).Handler()
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPaymentEndpoint(t *testing.T) {
	h := newTestServer(nil)

	w := post(t, h, "/api/v1/loan/payment",
		`{"price": 20000, "annual_rate_percent": 5, "term_years": 5, "down_payment": 2000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		MonthlyPayment    float64 `json:"monthly_payment"`
		TotalInterestPaid float64 `json:"total_interest_paid"`
		Summary           string  `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.MonthlyPayment < 339.67 || resp.MonthlyPayment > 339.69 {
		t.Errorf("unexpected monthly payment %f", resp.MonthlyPayment)
	}
	if resp.Summary == "" {
		t.Error("expected summary text")
	}
}

func TestScheduleEndpoint(t *testing.T) {
	h := newTestServer(nil)

	w := post(t, h, "/api/v1/loan/schedule",
		`{"price": 10000, "annual_rate_percent": 0, "term_years": 2, "layout": "full"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Layout   string `json:"layout"`
		Schedule []struct {
			Month            int     `json:"month"`
			RemainingBalance float64 `json:"remaining_balance"`
		} `json:"schedule"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Layout != "full" {
		t.Errorf("expected full layout, got %s", resp.Layout)
	}
	if len(resp.Schedule) != 24 {
		t.Errorf("expected 24 rows, got %d", len(resp.Schedule))
	}
}

func TestChartsEndpoint(t *testing.T) {
	h := newTestServer(nil)

	w := post(t, h, "/api/v1/loan/charts",
		`{"price": 20000, "annual_rate_percent": 5, "term_years": 5, "down_payment": 2000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Line struct {
			Series []json.RawMessage `json:"series"`
		} `json:"line"`
		Pie struct {
			Slices []json.RawMessage `json:"slices"`
		} `json:"pie"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Line.Series) != 2 || len(resp.Pie.Slices) != 2 {
		t.Errorf("unexpected charts payload: %s", w.Body.String())
	}
}

func TestSchedulePDFEndpoint(t *testing.T) {
	h := newTestServer(nil)

	w := post(t, h, "/api/v1/loan/schedule.pdf",
		`{"price": 20000, "annual_rate_percent": 5, "term_years": 5, "down_payment": 2000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Error("expected PDF body")
	}
}

func TestValidationErrors(t *testing.T) {
	h := newTestServer(nil)

	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "zero term", path: "/api/v1/loan/payment", body: `{"price": 15000, "annual_rate_percent": 6, "term_years": 0}`},
		{name: "down exceeds price", path: "/api/v1/loan/schedule", body: `{"price": 5000, "annual_rate_percent": 4, "term_years": 3, "down_payment": 6000}`},
		{name: "invalid json", path: "/api/v1/loan/payment", body: `{invalid-json}`},
		{name: "missing fields", path: "/api/v1/loan/charts", body: `{}`},
		{name: "pdf zero term", path: "/api/v1/loan/schedule.pdf", body: `{"price": 15000, "annual_rate_percent": 6, "term_years": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h, tt.path, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp["error"] == "" {
				t.Error("expected error message")
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/loan/payment", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(nil)

	for _, path := range []string{"/health", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Stop()
	h := newTestServer(limiter)

	body := `{"price": 10000, "annual_rate_percent": 3, "term_years": 2}`
	for i := 0; i < 2; i++ {
		if w := post(t, h, "/api/v1/loan/payment", body); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
	if w := post(t, h, "/api/v1/loan/payment", body); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s := &Server{cfg: &config.Config{}, logger: zap.New(core)}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.writeJSON(w, req, http.StatusOK, map[string]float64{"monthly_payment": math.Inf(1)})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "internal error" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
	if logs.FilterMessage("encode response failed").Len() != 1 {
		t.Errorf("expected encode failure to be logged, got %v", logs.All())
	}
}

func TestPaymentEndpointNearZeroRate(t *testing.T) {
	h := newTestServer(nil)

	w := post(t, h, "/api/v1/loan/payment",
		`{"price": 20000, "annual_rate_percent": 1e-15, "term_years": 5, "down_payment": 2000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		MonthlyPayment float64 `json:"monthly_payment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if math.Abs(resp.MonthlyPayment-300) > 1e-6 {
		t.Errorf("expected monthly payment ~300, got %f", resp.MonthlyPayment)
	}
}
