package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервиса
type Config struct {
	Port               int
	MaxPrice           float64
	MaxRate            float64
	MaxYears           int
	ScheduleLayout     string
	MetricsEnabled     bool
	RateLimitPerMinute int
	OTELEndpoint       string
	OTELServiceName    string
	LogLevel           string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvInt("PORT", 8000),
		MaxPrice:           getEnvFloat("MAX_PRICE", 1e9),
		MaxRate:            getEnvFloat("MAX_RATE", 100),
		MaxYears:           getEnvInt("MAX_YEARS", 50),
		ScheduleLayout:     getEnvString("SCHEDULE_LAYOUT", "baseline"),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		OTELEndpoint:       getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:    getEnvString("OTEL_SERVICE_NAME", "loan-amortization"),
		LogLevel:           getEnvString("LOG_LEVEL", "INFO"),
	}

	// Ставка выше 100% годовых не принимается
	if cfg.MaxRate > 100 {
		cfg.MaxRate = 100
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
