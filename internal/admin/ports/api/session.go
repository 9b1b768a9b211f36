// Package api определяет входящие порты админки.
package api

import (
	"context"

	"albuhara/internal/admin/domain/entities"
)

// SessionUseCase управляет сессией администратора.
type SessionUseCase interface {
	Login(ctx context.Context, username, password string) error

	Logout(ctx context.Context) error

	Status(ctx context.Context) (entities.SessionStatus, error)

	IsAuthenticated(ctx context.Context) (bool, error)
}
