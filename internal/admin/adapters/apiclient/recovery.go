package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"albuhara/pkg/logger"
)

const (
	LogAuthFailure         = "request rejected with 401"
	LogNoRefreshToken      = "no refresh token stored, giving up" // #nosec G101 - not a credential
	LogTokenAlreadyRotated = "access token rotated by another request, replaying"
	LogReplayingRequest    = "replaying request with refreshed token"
	LogSessionInvalidated  = "session invalidated"
	LogClearCredentials    = "failed to clear credentials"

	errStoreRefreshedToken = "failed to store refreshed token"
)

// recoveryStage восстанавливает запрос после 401: обновляет токен доступа
// и повторяет запрос ровно один раз. Повтор отправляется в next, то есть
// ниже этой стадии, и не может снова запустить обновление.
func (c *Client) recoveryStage(next Handler) Handler {
	return func(ctx context.Context, req *Request) (*Response, error) {
		resp, err := next(ctx, req)
		if err != nil || resp.StatusCode != http.StatusUnauthorized {
			return resp, err
		}

		log := logger.Log(ctx).With(zap.String("method", req.Method), zap.String("path", req.Path))
		log.Debug(ctx, LogAuthFailure)

		creds, err := c.store.Get(ctx)
		if err != nil {
			return resp, newStatusError(req, resp, fmt.Errorf("%s: %w", errReadCredentials, err))
		}
		if !creds.HasRefresh() {
			log.Debug(ctx, LogNoRefreshToken)
			return resp, nil
		}

		access := creds.AccessToken
		if access == "" || access == req.Bearer() {
			access, err = c.refreshAccessToken(ctx, creds.RefreshToken)
			if err != nil {
				return resp, newStatusError(req, resp, err)
			}
		} else {
			log.Debug(ctx, LogTokenAlreadyRotated)
		}

		log.Debug(ctx, LogReplayingRequest)
		replay := req.Clone()
		replay.SetBearer(access)
		return next(ctx, replay)
	}
}

// refreshAccessToken объединяет одновременные обновления по одному
// refresh-токену в один вызов эндпоинта.
func (c *Client) refreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	flightCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(refreshToken, func() (any, error) {
		return c.runRefresh(flightCtx, refreshToken)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *Client) runRefresh(ctx context.Context, refreshToken string) (string, error) {
	current, err := c.store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errReadCredentials, err)
	}
	if current.RefreshToken != refreshToken {
		// Предыдущий цикл уже ротировал токены или завершил сессию.
		if current.HasRefresh() && current.HasAccess() {
			return current.AccessToken, nil
		}
		return "", ErrSessionInvalidated
	}

	// ctx отвязан от вызывающего, поэтому любая ошибка здесь, включая
	// таймаут транспорта, означает неудачное обновление.
	tokens, err := c.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		c.invalidate(ctx, err)
		return "", errors.Join(ErrSessionInvalidated, err)
	}

	if tokens.HasRefresh() {
		err = c.store.Set(ctx, tokens)
	} else {
		err = c.store.SetAccessToken(ctx, tokens.AccessToken)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", errStoreRefreshedToken, err)
	}
	return tokens.AccessToken, nil
}

// invalidate очищает хранилище и уведомляет наблюдателя.
// Вызывается один раз на неудачный цикл обновления.
func (c *Client) invalidate(ctx context.Context, cause error) {
	log := logger.Log(ctx)
	if err := c.store.Clear(ctx); err != nil {
		log.Error(ctx, LogClearCredentials, zap.Error(err))
	}
	log.Warn(ctx, LogSessionInvalidated, zap.Error(cause))
	c.invalidator.SessionInvalidated(ctx, cause)
}
