package apiclient

import (
	"context"
	"net/http"

	"albuhara/internal/admin/resilience"
)

// BreakerStage отклоняет запросы, пока бэкенд считается недоступным.
// Отказом считаются ошибки транспорта и статусы 5xx.
func BreakerStage(cb *resilience.CircuitBreaker) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (*Response, error) {
			if !cb.AllowRequest(ctx) {
				return nil, resilience.ErrCircuitOpen
			}
			resp, err := next(ctx, req)
			cb.RecordResult(ctx, err != nil || resp.StatusCode >= http.StatusInternalServerError)
			return resp, err
		}
	}
}
