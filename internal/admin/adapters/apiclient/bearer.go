package apiclient

import (
	"context"
	"fmt"

	"albuhara/internal/admin/ports/credentials"
)

const errReadCredentials = "failed to read credentials"

// BearerStage прикрепляет текущий токен доступа из хранилища.
// Без сохраненного токена запрос не меняется.
func BearerStage(store credentials.Store) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (*Response, error) {
			creds, err := store.Get(ctx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", errReadCredentials, err)
			}
			if creds.HasAccess() {
				req.SetBearer(creds.AccessToken)
			}
			return next(ctx, req)
		}
	}
}
