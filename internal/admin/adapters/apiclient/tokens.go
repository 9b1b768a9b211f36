package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"albuhara/internal/admin/domain/entities"
	"albuhara/pkg/logger"
)

const (
	LogObtainingTokens = "obtaining token pair"
	LogRefreshingToken = "refreshing access token" // #nosec G101 - not a credential
	LogTokenRefreshed  = "access token refreshed"  // #nosec G101 - not a credential

	errObtainTokens  = "failed to obtain tokens"
	errRefreshTokens = "failed to refresh access token"
)

// TokenRefresher выпускает новый токен доступа по refresh-токену.
// Если бэкенд ротирует refresh-токен, он возвращается в RefreshToken.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (entities.Credentials, error)
}

// TokenEndpoint обращается к эндпоинтам выдачи и обновления токенов напрямую
// через транспорт, минуя конвейер клиента: эти запросы не несут Bearer и
// не восстанавливаются после 401.
type TokenEndpoint struct {
	doer       Doer
	tokenURL   string
	refreshURL string
}

// NewTokenEndpoint создает клиент эндпоинтов токенов.
func NewTokenEndpoint(doer Doer, tokenURL, refreshURL string) *TokenEndpoint {
	return &TokenEndpoint{doer: doer, tokenURL: tokenURL, refreshURL: refreshURL}
}

var _ TokenRefresher = (*TokenEndpoint)(nil)

type obtainRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Obtain обменивает логин и пароль на пару токенов.
func (e *TokenEndpoint) Obtain(ctx context.Context, username, password string) (entities.Credentials, error) {
	log := logger.Log(ctx).With(zap.String("username", username))
	log.Debug(ctx, LogObtainingTokens)

	resp, err := e.post(ctx, e.tokenURL, obtainRequest{Username: username, Password: password})
	if err != nil {
		return entities.Credentials{}, fmt.Errorf("%s: %w", errObtainTokens, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		return entities.Credentials{}, fmt.Errorf("%s: %w: %w", errObtainTokens, ErrInvalidCredentials,
			newStatusError(&Request{Method: http.MethodPost, Path: e.tokenURL}, resp, nil))
	case resp.StatusCode >= http.StatusMultipleChoices:
		return entities.Credentials{}, fmt.Errorf("%s: %w", errObtainTokens,
			newStatusError(&Request{Method: http.MethodPost, Path: e.tokenURL}, resp, nil))
	}

	var creds entities.Credentials
	if err := resp.DecodeJSON(&creds); err != nil {
		return entities.Credentials{}, fmt.Errorf("%s: %w", errObtainTokens, err)
	}
	if !creds.HasAccess() || !creds.HasRefresh() {
		return entities.Credentials{}, fmt.Errorf("%s: incomplete token pair in response", errObtainTokens)
	}
	return creds, nil
}

// Refresh отправляет {refresh} и ожидает {access[, refresh]}.
// Любой ответ кроме 2xx с токеном доступа - ErrRefreshRejected.
func (e *TokenEndpoint) Refresh(ctx context.Context, refreshToken string) (entities.Credentials, error) {
	log := logger.Log(ctx)
	log.Debug(ctx, LogRefreshingToken)

	resp, err := e.post(ctx, e.refreshURL, refreshRequest{Refresh: refreshToken})
	if err != nil {
		return entities.Credentials{}, fmt.Errorf("%s: %w", errRefreshTokens, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return entities.Credentials{}, fmt.Errorf("%s: %w: %w", errRefreshTokens, ErrRefreshRejected,
			newStatusError(&Request{Method: http.MethodPost, Path: e.refreshURL}, resp, nil))
	}

	var creds entities.Credentials
	if err := resp.DecodeJSON(&creds); err != nil {
		return entities.Credentials{}, fmt.Errorf("%s: %w: %w", errRefreshTokens, ErrRefreshRejected, err)
	}
	if !creds.HasAccess() {
		return entities.Credentials{}, fmt.Errorf("%s: %w: no access token in response", errRefreshTokens, ErrRefreshRejected)
	}

	log.Debug(ctx, LogTokenRefreshed, zap.Bool("refresh_rotated", creds.HasRefresh()))
	return creds, nil
}

func (e *TokenEndpoint) post(ctx context.Context, target string, body any) (*Response, error) {
	req, err := NewRequest(http.MethodPost, target, body)
	if err != nil {
		return nil, err
	}
	return transportHandler(e.doer, nil)(ctx, req)
}
