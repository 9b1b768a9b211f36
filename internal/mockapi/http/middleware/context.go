// Package middleware содержит промежуточное ПО тестового бэкенда.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

const (
	localRequestContext = "requestContext"
	localUserID         = "userID"
)

// RequestContext возвращает контекст запроса с request id, сохраненный
// NewLoggerMiddleware.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(localRequestContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

// UserID возвращает id пользователя, проверенный NewAuthMiddleware.
func UserID(c fiber.Ctx) string {
	id, _ := c.Locals(localUserID).(string)
	return id
}
