package app_test

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"albuhara/internal/admin/adapters/apiclient"
	"albuhara/internal/admin/domain/entities"
)

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) Obtain(ctx context.Context, username, password string) (entities.Credentials, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(entities.Credentials), args.Error(1)
}

type mockCredentialStore struct {
	mock.Mock
}

func (m *mockCredentialStore) Get(ctx context.Context) (entities.Credentials, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.Credentials), args.Error(1)
}

func (m *mockCredentialStore) Set(ctx context.Context, creds entities.Credentials) error {
	return m.Called(ctx, creds).Error(0)
}

func (m *mockCredentialStore) SetAccessToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockCredentialStore) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockAPIClient struct {
	mock.Mock
}

func (m *mockAPIClient) response(args mock.Arguments) (*apiclient.Response, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apiclient.Response), args.Error(1)
}

func (m *mockAPIClient) Get(ctx context.Context, path string, query url.Values) (*apiclient.Response, error) {
	return m.response(m.Called(ctx, path, query))
}

func (m *mockAPIClient) Post(ctx context.Context, path string, body any) (*apiclient.Response, error) {
	return m.response(m.Called(ctx, path, body))
}

func (m *mockAPIClient) Put(ctx context.Context, path string, body any) (*apiclient.Response, error) {
	return m.response(m.Called(ctx, path, body))
}

func (m *mockAPIClient) Patch(ctx context.Context, path string, body any) (*apiclient.Response, error) {
	return m.response(m.Called(ctx, path, body))
}

func (m *mockAPIClient) Delete(ctx context.Context, path string) (*apiclient.Response, error) {
	return m.response(m.Called(ctx, path))
}

func jsonResponse(status int, body string) *apiclient.Response {
	return &apiclient.Response{StatusCode: status, Body: []byte(body)}
}
