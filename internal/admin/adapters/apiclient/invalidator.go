package apiclient

import "context"

// SessionInvalidator получает сигнал о том, что сессия потеряна: обновить
// токен не удалось, и хранилище уже очищено. Для UI это переход на вход.
type SessionInvalidator interface {
	SessionInvalidated(ctx context.Context, cause error)
}

// SessionInvalidatorFunc адаптирует функцию к SessionInvalidator.
type SessionInvalidatorFunc func(ctx context.Context, cause error)

// SessionInvalidated вызывает f.
func (f SessionInvalidatorFunc) SessionInvalidated(ctx context.Context, cause error) {
	f(ctx, cause)
}

type nopInvalidator struct{}

func (nopInvalidator) SessionInvalidated(context.Context, error) {}
