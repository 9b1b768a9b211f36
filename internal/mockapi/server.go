// Package mockapi собирает тестовый бэкенд с REST API сайта: выдача JWT,
// обновление токена и ресурсы каталога в памяти.
package mockapi

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"albuhara/internal/mockapi/accounts"
	"albuhara/internal/mockapi/config"
	httpServer "albuhara/internal/mockapi/http"
	"albuhara/internal/mockapi/http/handlers"
	"albuhara/internal/mockapi/storage"
	"albuhara/internal/mockapi/tokens"
)

const errCreateAuthenticator = "failed to create admin account"

// Server - собранное приложение и его состояние.
type Server struct {
	App     *fiber.App
	Issuer  *tokens.Issuer
	Catalog *storage.Catalog
}

// New создает приложение по конфигурации.
func New(cfg *config.Config) (*Server, error) {
	authenticator, err := accounts.NewAuthenticator(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword, cfg.Auth.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCreateAuthenticator, err)
	}

	issuer := tokens.NewIssuer(cfg.Auth.SecretKey, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	catalog := storage.NewCatalog()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		BodyLimit:    cfg.HTTP.BodyLimit,
	})
	httpServer.SetupRouter(app,
		handlers.NewAuthHandler(authenticator, issuer, cfg.Auth.RotateRefreshTokens),
		handlers.NewCatalogHandler(catalog),
		issuer)

	return &Server{App: app, Issuer: issuer, Catalog: catalog}, nil
}
