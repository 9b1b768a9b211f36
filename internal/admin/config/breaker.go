package config

import (
	"time"

	"albuhara/internal/admin/resilience"
)

// BreakerConfig - настройки circuit breaker перед транспортом.
type BreakerConfig struct {
	Enabled          bool          `yaml:"enabled" env:"ADMIN_BREAKER_ENABLED" env-default:"false"`
	ErrorThreshold   int           `yaml:"error_threshold" env:"ADMIN_BREAKER_ERROR_THRESHOLD" env-default:"5"`
	Timeout          time.Duration `yaml:"timeout" env:"ADMIN_BREAKER_TIMEOUT" env-default:"10s"`
	SuccessThreshold int           `yaml:"success_threshold" env:"ADMIN_BREAKER_SUCCESS_THRESHOLD" env-default:"2"`
}

// CircuitBreakerConfig переводит настройки в конфигурацию resilience.
func (c *BreakerConfig) CircuitBreakerConfig() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		ErrorThreshold:   c.ErrorThreshold,
		Timeout:          c.Timeout,
		SuccessThreshold: c.SuccessThreshold,
	}
}
