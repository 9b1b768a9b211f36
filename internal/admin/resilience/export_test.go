package resilience

import "time"

// NewCircuitBreakerWithClock создает circuit breaker с подменяемыми часами.
func NewCircuitBreakerWithClock(name string, config CircuitBreakerConfig, now func() time.Time) *CircuitBreaker {
	return newCircuitBreaker(name, config, now)
}
