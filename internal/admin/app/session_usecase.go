// Package app содержит сценарии админки поверх клиента API.
package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"albuhara/internal/admin/domain/entities"
	"albuhara/internal/admin/ports/api"
	"albuhara/internal/admin/ports/credentials"
	svc "albuhara/internal/admin/ports/services"
	"albuhara/pkg/logger"
)

const (
	methodLogin  = "Login"
	methodLogout = "Logout"
	methodStatus = "Status"

	msgLoginAttempt      = "login attempt"
	msgLoggedIn          = "admin logged in"
	msgLoggedOut         = "admin logged out"
	msgUnparsableToken   = "stored token is not a readable JWT" // #nosec G101 - not a credential
	msgSessionStatusRead = "session status read"

	errCtxObtainingTokens = "obtaining tokens"
	errCtxStoringTokens   = "storing tokens"
	errCtxClearingTokens  = "clearing tokens"
	errCtxReadingTokens   = "reading tokens"
)

// SessionUseCaseImpl реализует api.SessionUseCase.
type SessionUseCaseImpl struct {
	issuer svc.TokenIssuer
	store  credentials.Store
}

// NewSessionUseCase создает сценарий сессии.
func NewSessionUseCase(issuer svc.TokenIssuer, store credentials.Store) api.SessionUseCase {
	return &SessionUseCaseImpl{issuer: issuer, store: store}
}

// Login получает пару токенов и сохраняет ее. Запрос идет мимо конвейера
// клиента и не запускает обновление токена.
func (s *SessionUseCaseImpl) Login(ctx context.Context, username, password string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	if username == "" {
		return entities.ErrEmptyUsername
	}
	if password == "" {
		return entities.ErrEmptyPassword
	}

	creds, err := s.issuer.Obtain(ctx, username, password)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxObtainingTokens, err)
	}
	if err := s.store.Set(ctx, creds); err != nil {
		return fmt.Errorf("%s: %w", errCtxStoringTokens, err)
	}

	log.Info(ctx, msgLoggedIn)
	return nil
}

// Logout удаляет оба токена.
func (s *SessionUseCaseImpl) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtxClearingTokens, err)
	}
	logger.Log(ctx).Info(ctx, msgLoggedOut, zap.String("method", methodLogout))
	return nil
}

// IsAuthenticated сообщает, сохранен ли токен доступа.
func (s *SessionUseCaseImpl) IsAuthenticated(ctx context.Context) (bool, error) {
	creds, err := s.store.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtxReadingTokens, err)
	}
	return creds.HasAccess(), nil
}

// Status читает сроки действия и пользователя из claims сохраненных токенов.
func (s *SessionUseCaseImpl) Status(ctx context.Context) (entities.SessionStatus, error) {
	log := logger.Log(ctx).With(zap.String("method", methodStatus))

	creds, err := s.store.Get(ctx)
	if err != nil {
		return entities.SessionStatus{}, fmt.Errorf("%s: %w", errCtxReadingTokens, err)
	}

	status := entities.SessionStatus{Authenticated: creds.HasAccess()}
	if creds.HasAccess() {
		claims, err := parseClaims(creds.AccessToken)
		if err != nil {
			log.Debug(ctx, msgUnparsableToken, zap.String("token", "access"), zap.Error(err))
		} else {
			status.UserID = claims.userID()
			status.AccessExpiresAt = claims.expiresAt()
		}
	}
	if creds.HasRefresh() {
		claims, err := parseClaims(creds.RefreshToken)
		if err != nil {
			log.Debug(ctx, msgUnparsableToken, zap.String("token", "refresh"), zap.Error(err))
		} else {
			if status.UserID == "" {
				status.UserID = claims.userID()
			}
			status.RefreshExpiresAt = claims.expiresAt()
		}
	}

	log.Debug(ctx, msgSessionStatusRead, zap.Bool("authenticated", status.Authenticated))
	return status, nil
}

type tokenClaims struct {
	UserID    any    `json:"user_id"`
	TokenType string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

func (c *tokenClaims) userID() string {
	switch v := c.UserID.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return c.Subject
	default:
		return fmt.Sprint(v)
	}
}

func (c *tokenClaims) expiresAt() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

var errNotJWT = errors.New("token is not a JWT")

// parseClaims разбирает JWT без проверки подписи: ключ есть только у бэкенда.
func parseClaims(token string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", errNotJWT, err)
	}
	return claims, nil
}
