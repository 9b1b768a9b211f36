package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"albuhara/pkg/logger"
)

const (
	headerRequestID = "X-Request-ID"

	LogRequestCompleted = "request completed"
	LogRequestFailed    = "request failed"
)

// NewLoggerMiddleware присваивает запросу request id и логирует результат.
// Request id берется из заголовка X-Request-ID, если клиент его прислал.
func NewLoggerMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := logger.NewRequestIDContext(c.Context(), c.Get(headerRequestID))
		c.Locals(localRequestContext, ctx)
		if id, ok := logger.GetRequestID(ctx); ok {
			c.Set(headerRequestID, id)
		}

		start := time.Now()
		log := logger.Log(ctx).With(
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.String("ip", c.IP()),
		)

		err := c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			log.Error(ctx, LogRequestFailed, append(fields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(ctx, LogRequestCompleted, fields...)
		return nil
	}
}
