package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"albuhara/internal/mockapi/tokens"
	"albuhara/pkg/logger"
)

const (
	LogAuthMiddleware = "auth middleware"

	DetailNoCredentials = "Authentication credentials were not provided."
	DetailInvalidToken  = "Given token not valid for any token type"
	CodeTokenNotValid   = "token_not_valid"
)

// TokenValidator проверяет токен доступа.
type TokenValidator interface {
	Validate(ctx context.Context, token string, kind tokens.Kind) (*tokens.Claims, error)
}

// NewAuthMiddleware пропускает только запросы с действующим токеном доступа.
func NewAuthMiddleware(validator TokenValidator) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := RequestContext(c)
		log := logger.Log(ctx).With(zap.String("middleware", "auth"))
		log.Debug(ctx, LogAuthMiddleware)

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": DetailNoCredentials})
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": DetailInvalidToken,
				"code":   CodeTokenNotValid,
			})
		}

		claims, err := validator.Validate(ctx, token, tokens.KindAccess)
		if err != nil {
			log.Debug(ctx, DetailInvalidToken, zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": DetailInvalidToken,
				"code":   CodeTokenNotValid,
			})
		}

		c.Locals(localUserID, claims.UserID)
		return c.Next()
	}
}
