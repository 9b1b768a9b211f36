// Package credentials определяет порт хранилища токенов сессии.
package credentials

import (
	"context"
	"errors"

	"albuhara/internal/admin/domain/entities"
)

// ErrNoSession - в хранилище нет refresh-токена, обновлять нечего.
var ErrNoSession = errors.New("no stored session")

// Store хранит пару токенов между запусками процесса.
// Get для пустого хранилища возвращает нулевую пару без ошибки.
// SetAccessToken без сохраненного refresh-токена возвращает ErrNoSession
// и ничего не записывает: выход из сессии не отменяется поздним обновлением.
type Store interface {
	Get(ctx context.Context) (entities.Credentials, error)

	Set(ctx context.Context, creds entities.Credentials) error

	SetAccessToken(ctx context.Context, token string) error

	Clear(ctx context.Context) error
}
