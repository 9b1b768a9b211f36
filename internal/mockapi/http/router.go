// Package http собирает HTTP сервер тестового бэкенда.
package http

import (
	"github.com/gofiber/fiber/v3"

	"albuhara/internal/mockapi/http/handlers"
	"albuhara/internal/mockapi/http/middleware"
)

// SetupRouter настраивает маршруты в формате REST API сайта. Чтение открыто,
// изменения требуют токена доступа.
func SetupRouter(
	app *fiber.App,
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	validator middleware.TokenValidator,
) {
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// Middleware маршрута передается после обработчика: fiber выполняет
	// его первым.
	requireAuth := middleware.NewAuthMiddleware(validator)
	api := app.Group("/api")

	authRoutes := api.Group("/auth/token")
	authRoutes.Post("/", authHandler.ObtainToken)
	authRoutes.Post("/refresh/", authHandler.RefreshToken)

	api.Get("/categories/", catalogHandler.ListCategories)
	api.Post("/categories/", catalogHandler.CreateCategory, requireAuth)
	api.Put("/categories/:id/", catalogHandler.UpdateCategory, requireAuth)
	api.Delete("/categories/:id/", catalogHandler.DeleteCategory, requireAuth)

	api.Get("/items/", catalogHandler.ListItems)
	api.Post("/items/", catalogHandler.CreateItem, requireAuth)
	api.Put("/items/:id/", catalogHandler.UpdateItem, requireAuth)
	api.Delete("/items/:id/", catalogHandler.DeleteItem, requireAuth)

	api.Get("/decor/", catalogHandler.ListDecor)
	api.Patch("/decor/:id/", catalogHandler.PatchDecor, requireAuth)

	api.Get("/home-slider-:position/", catalogHandler.ListSlides)
	api.Post("/home-slider-:position/", catalogHandler.AddSlide, requireAuth)
	api.Delete("/home-slider-:position/:id/", catalogHandler.DeleteSlide, requireAuth)

	api.Get("/about-section/", catalogHandler.ListAbout)
	api.Post("/about-section/", catalogHandler.CreateAbout, requireAuth)
	api.Put("/about-section/:id/", catalogHandler.UpdateAbout, requireAuth)

	api.Get("/contact/", catalogHandler.ListContacts)
	api.Put("/contact/:id/", catalogHandler.UpdateContact, requireAuth)

	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": handlers.ErrMsgNotFound})
	})
}
