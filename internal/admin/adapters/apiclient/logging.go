package apiclient

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"albuhara/pkg/logger"
)

const (
	LogRequestCompleted = "api request completed"
	LogRequestFailed    = "api request failed"
)

// LoggingStage присваивает запросу request id и логирует результат.
func LoggingStage() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (*Response, error) {
			if _, ok := logger.GetRequestID(ctx); !ok {
				ctx = logger.NewRequestIDContext(ctx, "")
			}
			if req.Header == nil {
				req.Header = make(http.Header)
			}
			if id, ok := logger.GetRequestID(ctx); ok && req.Header.Get(headerRequestID) == "" {
				req.Header.Set(headerRequestID, id)
			}

			log := logger.Log(ctx).With(
				zap.String("method", req.Method),
				zap.String("path", req.Path),
			)
			start := time.Now()

			resp, err := next(ctx, req)
			latency := time.Since(start)
			if err != nil {
				log.Warn(ctx, LogRequestFailed, zap.Duration("latency", latency), zap.Error(err))
				return resp, err
			}

			log.Debug(ctx, LogRequestCompleted,
				zap.Int("status", resp.StatusCode),
				zap.Duration("latency", latency))
			return resp, nil
		}
	}
}
