package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"albuhara/pkg/logger"
)

// NewRecoveryMiddleware превращает панику обработчика в ответ 500.
func NewRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		ctx := RequestContext(c)

		defer func() {
			if r := recover(); r != nil {
				logger.Log(ctx).Error(ctx, "Server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())))

				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"detail": "Internal Server Error",
				})
			}
		}()

		return c.Next()
	}
}
