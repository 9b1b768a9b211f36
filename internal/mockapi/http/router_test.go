package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"albuhara/internal/mockapi/accounts"
	httpServer "albuhara/internal/mockapi/http"
	"albuhara/internal/mockapi/http/handlers"
	"albuhara/internal/mockapi/http/middleware"
	"albuhara/internal/mockapi/storage"
	"albuhara/internal/mockapi/tokens"
)

var protectedRoutes = []struct {
	method string
	path   string
}{
	{http.MethodPost, "/api/categories/"},
	{http.MethodPut, "/api/categories/3/"},
	{http.MethodDelete, "/api/categories/3/"},
	{http.MethodPost, "/api/items/"},
	{http.MethodPut, "/api/items/3/"},
	{http.MethodDelete, "/api/items/3/"},
	{http.MethodPatch, "/api/decor/1/"},
	{http.MethodPost, "/api/home-slider-top/"},
	{http.MethodDelete, "/api/home-slider-bottom/3/"},
	{http.MethodPost, "/api/about-section/"},
	{http.MethodPut, "/api/about-section/3/"},
	{http.MethodPut, "/api/contact/2/"},
}

func newRouter(t *testing.T) (*fiber.App, *tokens.Issuer, *storage.Catalog) {
	t.Helper()

	authenticator, err := accounts.NewAuthenticator("admin", "s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	issuer := tokens.NewIssuer("router-secret", time.Minute, time.Hour)
	catalog := storage.NewCatalog()

	app := fiber.New()
	httpServer.SetupRouter(app,
		handlers.NewAuthHandler(authenticator, issuer, false),
		handlers.NewCatalogHandler(catalog),
		issuer)
	return app, issuer, catalog
}

func send(t *testing.T, app *fiber.App, method, path, authorization string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(`{"title":"Soups"}`))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app, _, catalog := newRouter(t)

	for _, route := range protectedRoutes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			status, body := send(t, app, route.method, route.path, "")

			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, middleware.DetailNoCredentials, body["detail"])
		})
	}

	assert.Empty(t, catalog.Categories())
	assert.Empty(t, catalog.About())
}

func TestProtectedRoutesRejectInvalidToken(t *testing.T) {
	app, issuer, _ := newRouter(t)
	refresh, err := issuer.Issue(context.Background(), "1", tokens.KindRefresh)
	require.NoError(t, err)

	for _, authorization := range []string{"Bearer garbage", "Token abc", "Bearer " + refresh} {
		for _, route := range protectedRoutes {
			status, body := send(t, app, route.method, route.path, authorization)

			assert.Equal(t, http.StatusUnauthorized, status, "%s %s with %q", route.method, route.path, authorization)
			assert.Equal(t, middleware.CodeTokenNotValid, body["code"])
		}
	}
}

func TestProtectedRouteAcceptsAccessToken(t *testing.T) {
	app, issuer, catalog := newRouter(t)
	access, err := issuer.Issue(context.Background(), "1", tokens.KindAccess)
	require.NoError(t, err)

	status, body := send(t, app, http.MethodPost, "/api/categories/", "Bearer "+access)

	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Soups", body["title"])
	assert.Len(t, catalog.Categories(), 1)
}

func TestReadsArePublic(t *testing.T) {
	app, _, _ := newRouter(t)

	for _, path := range []string{
		"/api/categories/", "/api/items/", "/api/decor/", "/api/home-slider-top/",
		"/api/home-slider-bottom/", "/api/about-section/", "/api/contact/",
	} {
		status, _ := send(t, app, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, status, path)
	}
}
