package mockapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"albuhara/internal/admin/adapters/apiclient"
	"albuhara/internal/admin/adapters/credentials"
	"albuhara/internal/admin/app"
	"albuhara/internal/admin/domain/entities"
	"albuhara/internal/mockapi"
	"albuhara/internal/mockapi/config"
)

const baseURL = "http://mockapi.test"

// fiberDoer отправляет запросы клиента прямо в приложение без сети.
type fiberDoer struct {
	app *fiber.App
}

func (d fiberDoer) Do(req *http.Request) (*http.Response, error) {
	return d.app.Test(req)
}

func testConfig(rotate bool) *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{ReadTimeout: time.Second, WriteTimeout: time.Second, BodyLimit: 1 << 20},
		Auth: config.AuthConfig{
			SecretKey:           "test-secret",
			AccessTokenTTL:      time.Minute,
			RefreshTokenTTL:     time.Hour,
			RotateRefreshTokens: rotate,
			AdminUsername:       "admin",
			AdminPassword:       "s3cret",
			BCryptCost:          bcrypt.MinCost,
		},
	}
}

func newServer(t *testing.T, rotate bool) *mockapi.Server {
	t.Helper()
	srv, err := mockapi.New(testConfig(rotate))
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *mockapi.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func login(t *testing.T, srv *mockapi.Server) (string, string) {
	t.Helper()
	status, body := doJSON(t, srv, http.MethodPost, "/api/auth/token/", "",
		map[string]string{"username": "admin", "password": "s3cret"})
	require.Equal(t, http.StatusOK, status)
	return body["access"].(string), body["refresh"].(string)
}

func TestTokenObtain(t *testing.T) {
	srv := newServer(t, false)

	access, refresh := login(t, srv)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	status, body := doJSON(t, srv, http.MethodPost, "/api/auth/token/", "",
		map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "No active account found with the given credentials", body["detail"])

	status, body = doJSON(t, srv, http.MethodPost, "/api/auth/token/", "", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "password")
}

func TestTokenRefresh(t *testing.T) {
	t.Run("without rotation", func(t *testing.T) {
		srv := newServer(t, false)
		access, refresh := login(t, srv)

		status, body := doJSON(t, srv, http.MethodPost, "/api/auth/token/refresh/", "", map[string]string{"refresh": refresh})

		require.Equal(t, http.StatusOK, status)
		assert.NotEqual(t, access, body["access"])
		assert.NotContains(t, body, "refresh")
	})

	t.Run("with rotation the old refresh token is revoked", func(t *testing.T) {
		srv := newServer(t, true)
		_, refresh := login(t, srv)

		status, body := doJSON(t, srv, http.MethodPost, "/api/auth/token/refresh/", "", map[string]string{"refresh": refresh})
		require.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, body["refresh"])

		status, body = doJSON(t, srv, http.MethodPost, "/api/auth/token/refresh/", "", map[string]string{"refresh": refresh})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "token_not_valid", body["code"])
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		srv := newServer(t, false)
		access, _ := login(t, srv)

		status, _ := doJSON(t, srv, http.MethodPost, "/api/auth/token/refresh/", "", map[string]string{"refresh": access})
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestWritesRequireAccessToken(t *testing.T) {
	srv := newServer(t, false)
	access, refresh := login(t, srv)

	status, body := doJSON(t, srv, http.MethodPost, "/api/categories/", "", map[string]string{"title": "Soups"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Authentication credentials were not provided.", body["detail"])

	status, _ = doJSON(t, srv, http.MethodPost, "/api/categories/", refresh, map[string]string{"title": "Soups"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = doJSON(t, srv, http.MethodPost, "/api/categories/", access, map[string]string{"title": "Soups"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Soups", body["title"])

	status, body = doJSON(t, srv, http.MethodGet, "/api/categories/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["count"])
}

func TestCategoriesPagination(t *testing.T) {
	srv := newServer(t, false)
	for _, title := range []string{"a", "b", "c"} {
		srv.Catalog.CreateCategory(title)
	}

	status, body := doJSON(t, srv, http.MethodGet, "/api/categories/?page=2&page_size=2", "", nil)

	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3, body["count"])
	assert.Nil(t, body["next"])
	assert.NotNil(t, body["previous"])
	assert.Len(t, body["results"], 1)

	status, _ = doJSON(t, srv, http.MethodGet, "/api/categories/?page=5", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUnknownRoute(t *testing.T) {
	srv := newServer(t, false)
	status, body := doJSON(t, srv, http.MethodGet, "/api/nothing/", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not found.", body["detail"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newServer(t, false)
	req := httptest.NewRequest(http.MethodGet, "/api/contact/", nil)
	req.Header.Set("X-Request-ID", "req-7")

	resp, err := srv.App.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "req-7", resp.Header.Get("X-Request-ID"))
}

// Полный цикл админки против тестового бэкенда: вход, истекший токен
// доступа, прозрачное обновление и повтор.
func TestAdminClientAgainstMockAPI(t *testing.T) {
	for _, rotate := range []bool{false, true} {
		t.Run(map[bool]string{false: "static refresh", true: "rotating refresh"}[rotate], func(t *testing.T) {
			ctx := context.Background()
			srv := newServer(t, rotate)
			doer := fiberDoer{app: srv.App}
			store := credentials.NewMemoryStore(entities.Credentials{})

			endpoint := apiclient.NewTokenEndpoint(doer, baseURL+"/api/auth/token/", baseURL+"/api/auth/token/refresh/")
			session := app.NewSessionUseCase(endpoint, store)
			require.NoError(t, session.Login(ctx, "admin", "s3cret"))

			loggedIn, err := store.Get(ctx)
			require.NoError(t, err)

			// Токен доступа, который бэкенд уже не примет.
			require.NoError(t, store.SetAccessToken(ctx, "expired-access-token"))

			var invalidated int
			client, err := apiclient.New(baseURL, store,
				apiclient.WithDoer(doer),
				apiclient.WithSessionInvalidator(apiclient.SessionInvalidatorFunc(func(context.Context, error) {
					invalidated++
				})))
			require.NoError(t, err)
			catalog := app.NewCatalogUseCase(client)

			category, err := catalog.CreateCategory(ctx, "Soups")
			require.NoError(t, err)
			assert.Equal(t, "Soups", category.Title)
			assert.Zero(t, invalidated)

			creds, err := store.Get(ctx)
			require.NoError(t, err)
			assert.NotEqual(t, "expired-access-token", creds.AccessToken)
			if rotate {
				assert.NotEqual(t, loggedIn.RefreshToken, creds.RefreshToken)
			} else {
				assert.Equal(t, loggedIn.RefreshToken, creds.RefreshToken)
			}

			item, err := catalog.CreateItem(ctx, entities.ItemInput{
				Category:  category.ID,
				Name:      entities.LocalizedText{Az: "Dolma", En: "Dolma", Ru: "Долма"},
				BasePrice: "7.50",
				Image:     &entities.Upload{Filename: "dolma.jpg", Data: []byte("jpeg")},
			})
			require.NoError(t, err)
			assert.Equal(t, "/media/dolma.jpg", item.Image)

			page, err := catalog.ListItems(ctx, 1, "долма")
			require.NoError(t, err)
			assert.Equal(t, 1, page.Count)

			summary, err := catalog.Summary(ctx)
			require.NoError(t, err)
			assert.Equal(t, entities.Summary{Categories: 1, Items: 1}, summary)
		})
	}
}

func TestAdminClientSessionExpires(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t, false)
	doer := fiberDoer{app: srv.App}
	store := credentials.NewMemoryStore(entities.Credentials{
		AccessToken:  "expired-access-token",
		RefreshToken: "expired-refresh-token",
	})

	var invalidated int
	client, err := apiclient.New(baseURL, store,
		apiclient.WithDoer(doer),
		apiclient.WithSessionInvalidator(apiclient.SessionInvalidatorFunc(func(context.Context, error) {
			invalidated++
		})))
	require.NoError(t, err)

	_, err = app.NewCatalogUseCase(client).CreateCategory(ctx, "Soups")

	assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
	assert.ErrorIs(t, err, apiclient.ErrSessionInvalidated)
	assert.Equal(t, 1, invalidated)

	creds, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.Credentials{}, creds)
	assert.Empty(t, srv.Catalog.Categories())
}
