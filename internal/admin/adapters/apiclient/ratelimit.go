package apiclient

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

const errRateLimitWait = "waiting for rate limiter"

// RateLimitStage ждет разрешения limiter перед отправкой запроса.
// Отмена ctx во время ожидания возвращает ошибку без запроса к бэкенду.
func RateLimitStage(limiter *rate.Limiter) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (*Response, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%s: %w", errRateLimitWait, err)
			}
			return next(ctx, req)
		}
	}
}
