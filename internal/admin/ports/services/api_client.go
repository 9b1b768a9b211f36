// Package services определяет исходящие порты админки.
package services

import (
	"context"
	"net/url"

	"albuhara/internal/admin/adapters/apiclient"
	"albuhara/internal/admin/domain/entities"
)

// APIClient - аутентифицированный доступ к REST-бэкенду.
type APIClient interface {
	Get(ctx context.Context, path string, query url.Values) (*apiclient.Response, error)

	Post(ctx context.Context, path string, body any) (*apiclient.Response, error)

	Put(ctx context.Context, path string, body any) (*apiclient.Response, error)

	Patch(ctx context.Context, path string, body any) (*apiclient.Response, error)

	Delete(ctx context.Context, path string) (*apiclient.Response, error)
}

// TokenIssuer обменивает логин и пароль на пару токенов.
type TokenIssuer interface {
	Obtain(ctx context.Context, username, password string) (entities.Credentials, error)
}

var (
	_ APIClient   = (*apiclient.Client)(nil)
	_ TokenIssuer = (*apiclient.TokenEndpoint)(nil)
)
