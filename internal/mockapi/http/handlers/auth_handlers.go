// Package handlers содержит HTTP-обработчики тестового бэкенда.
package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"albuhara/internal/admin/domain/entities"
	"albuhara/internal/mockapi/accounts"
	"albuhara/internal/mockapi/http/middleware"
	"albuhara/internal/mockapi/tokens"
	"albuhara/pkg/logger"
)

const (
	LogHandlerObtainToken  = "handling token obtain request"
	LogHandlerRefreshToken = "handling token refresh request"

	DetailNoActiveAccount = "No active account found with the given credentials"
	DetailTokenInvalid    = "Token is invalid or expired"
	DetailFieldRequired   = "This field is required."
)

// Authenticator проверяет логин и пароль.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// TokenIssuer выпускает, проверяет и отзывает токены.
type TokenIssuer interface {
	IssuePair(ctx context.Context, userID string) (entities.Credentials, error)
	Issue(ctx context.Context, userID string, kind tokens.Kind) (string, error)
	Validate(ctx context.Context, token string, kind tokens.Kind) (*tokens.Claims, error)
	Revoke(ctx context.Context, claims *tokens.Claims)
}

// AuthHandler обслуживает выдачу и обновление токенов.
type AuthHandler struct {
	accounts      Authenticator
	issuer        TokenIssuer
	rotateRefresh bool
}

// NewAuthHandler создает обработчик токенов. При rotateRefresh обновление
// выдает новый refresh-токен и отзывает использованный.
func NewAuthHandler(accounts Authenticator, issuer TokenIssuer, rotateRefresh bool) *AuthHandler {
	return &AuthHandler{accounts: accounts, issuer: issuer, rotateRefresh: rotateRefresh}
}

type obtainRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// ObtainToken обменивает логин и пароль на пару токенов.
func (h *AuthHandler) ObtainToken(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	log := logger.Log(ctx).With(zap.String("handler", "AuthHandler.ObtainToken"))
	log.Debug(ctx, LogHandlerObtainToken)

	var req obtainRequest
	if err := c.Bind().JSON(&req); err != nil {
		return sendDetail(c, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	if missing := requiredFields(map[string]string{"username": req.Username, "password": req.Password}); missing != nil {
		return c.Status(fiber.StatusBadRequest).JSON(missing)
	}

	userID, err := h.accounts.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			return sendDetail(c, fiber.StatusUnauthorized, DetailNoActiveAccount)
		}
		log.Error(ctx, "failed to authenticate", zap.Error(err))
		return sendDetail(c, fiber.StatusInternalServerError, ErrMsgInternal)
	}

	pair, err := h.issuer.IssuePair(ctx, userID)
	if err != nil {
		log.Error(ctx, "failed to issue tokens", zap.Error(err))
		return sendDetail(c, fiber.StatusInternalServerError, ErrMsgInternal)
	}
	return c.JSON(pair)
}

// RefreshToken выдает новый токен доступа по refresh-токену.
func (h *AuthHandler) RefreshToken(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	log := logger.Log(ctx).With(zap.String("handler", "AuthHandler.RefreshToken"))
	log.Debug(ctx, LogHandlerRefreshToken)

	var req refreshRequest
	if err := c.Bind().JSON(&req); err != nil {
		return sendDetail(c, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	if missing := requiredFields(map[string]string{"refresh": req.Refresh}); missing != nil {
		return c.Status(fiber.StatusBadRequest).JSON(missing)
	}

	claims, err := h.issuer.Validate(ctx, req.Refresh, tokens.KindRefresh)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": DetailTokenInvalid,
			"code":   middleware.CodeTokenNotValid,
		})
	}

	if h.rotateRefresh {
		h.issuer.Revoke(ctx, claims)
		pair, err := h.issuer.IssuePair(ctx, claims.UserID)
		if err != nil {
			log.Error(ctx, "failed to issue tokens", zap.Error(err))
			return sendDetail(c, fiber.StatusInternalServerError, ErrMsgInternal)
		}
		return c.JSON(refreshResponse{Access: pair.AccessToken, Refresh: pair.RefreshToken})
	}

	access, err := h.issuer.Issue(ctx, claims.UserID, tokens.KindAccess)
	if err != nil {
		log.Error(ctx, "failed to issue access token", zap.Error(err))
		return sendDetail(c, fiber.StatusInternalServerError, ErrMsgInternal)
	}
	return c.JSON(refreshResponse{Access: access})
}

// requiredFields возвращает ошибки пустых полей в формате DRF или nil.
func requiredFields(fields map[string]string) fiber.Map {
	var missing fiber.Map
	for name, value := range fields {
		if value != "" {
			continue
		}
		if missing == nil {
			missing = fiber.Map{}
		}
		missing[name] = []string{DetailFieldRequired}
	}
	return missing
}
