package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"albuhara/internal/admin/adapters/apiclient"
	"albuhara/internal/admin/adapters/credentials"
	"albuhara/internal/admin/app"
	"albuhara/internal/admin/domain/entities"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-only-secret"))
	require.NoError(t, err)
	return token
}

func TestSessionUseCase_Login(t *testing.T) {
	ctx := context.Background()
	pair := entities.Credentials{AccessToken: "A1", RefreshToken: "R1"}

	t.Run("stores obtained pair", func(t *testing.T) {
		issuer := &mockTokenIssuer{}
		issuer.On("Obtain", mock.Anything, "admin", "secret").Return(pair, nil).Once()
		store := credentials.NewMemoryStore(entities.Credentials{})

		err := app.NewSessionUseCase(issuer, store).Login(ctx, "admin", "secret")

		require.NoError(t, err)
		got, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, pair, got)
		issuer.AssertExpectations(t)
	})

	t.Run("invalid credentials keep store untouched", func(t *testing.T) {
		issuer := &mockTokenIssuer{}
		issuer.On("Obtain", mock.Anything, "admin", "wrong").
			Return(entities.Credentials{}, apiclient.ErrInvalidCredentials).Once()
		store := &mockCredentialStore{}

		err := app.NewSessionUseCase(issuer, store).Login(ctx, "admin", "wrong")

		assert.ErrorIs(t, err, apiclient.ErrInvalidCredentials)
		store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		errDisk := errors.New("read-only file system")
		issuer := &mockTokenIssuer{}
		issuer.On("Obtain", mock.Anything, "admin", "secret").Return(pair, nil).Once()
		store := &mockCredentialStore{}
		store.On("Set", mock.Anything, pair).Return(errDisk).Once()

		err := app.NewSessionUseCase(issuer, store).Login(ctx, "admin", "secret")

		assert.ErrorIs(t, err, errDisk)
		store.AssertExpectations(t)
	})

	t.Run("empty input is rejected locally", func(t *testing.T) {
		issuer := &mockTokenIssuer{}
		uc := app.NewSessionUseCase(issuer, credentials.NewMemoryStore(entities.Credentials{}))

		assert.ErrorIs(t, uc.Login(ctx, "", "secret"), entities.ErrEmptyUsername)
		assert.ErrorIs(t, uc.Login(ctx, "admin", ""), entities.ErrEmptyPassword)
		issuer.AssertNotCalled(t, "Obtain", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSessionUseCase_Logout(t *testing.T) {
	ctx := context.Background()
	store := credentials.NewMemoryStore(entities.Credentials{AccessToken: "A1", RefreshToken: "R1"})
	uc := app.NewSessionUseCase(&mockTokenIssuer{}, store)

	require.NoError(t, uc.Logout(ctx))

	ok, err := uc.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.Credentials{}, got)
}

func TestSessionUseCase_Status(t *testing.T) {
	ctx := context.Background()
	accessExp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	refreshExp := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	t.Run("reads claims without verifying signature", func(t *testing.T) {
		store := credentials.NewMemoryStore(entities.Credentials{
			AccessToken:  signToken(t, jwt.MapClaims{"user_id": 7, "token_type": "access", "exp": accessExp.Unix()}),
			RefreshToken: signToken(t, jwt.MapClaims{"user_id": 7, "token_type": "refresh", "exp": refreshExp.Unix()}),
		})

		status, err := app.NewSessionUseCase(&mockTokenIssuer{}, store).Status(ctx)

		require.NoError(t, err)
		assert.True(t, status.Authenticated)
		assert.Equal(t, "7", status.UserID)
		assert.True(t, status.AccessExpiresAt.Equal(accessExp))
		assert.True(t, status.RefreshExpiresAt.Equal(refreshExp))
		assert.False(t, status.AccessExpired(time.Now()))
		assert.True(t, status.AccessExpired(accessExp))
	})

	t.Run("refresh token only", func(t *testing.T) {
		store := credentials.NewMemoryStore(entities.Credentials{
			RefreshToken: signToken(t, jwt.MapClaims{"sub": "admin", "exp": refreshExp.Unix()}),
		})

		status, err := app.NewSessionUseCase(&mockTokenIssuer{}, store).Status(ctx)

		require.NoError(t, err)
		assert.False(t, status.Authenticated)
		assert.Equal(t, "admin", status.UserID)
		assert.True(t, status.AccessExpiresAt.IsZero())
	})

	t.Run("opaque tokens", func(t *testing.T) {
		store := credentials.NewMemoryStore(entities.Credentials{AccessToken: "A1", RefreshToken: "R1"})

		status, err := app.NewSessionUseCase(&mockTokenIssuer{}, store).Status(ctx)

		require.NoError(t, err)
		assert.True(t, status.Authenticated)
		assert.Empty(t, status.UserID)
		assert.False(t, status.AccessExpired(time.Now()))
	})

	t.Run("store failure", func(t *testing.T) {
		errRedis := errors.New("connection refused")
		store := &mockCredentialStore{}
		store.On("Get", mock.Anything).Return(entities.Credentials{}, errRedis)

		_, err := app.NewSessionUseCase(&mockTokenIssuer{}, store).Status(ctx)
		assert.ErrorIs(t, err, errRedis)

		_, err = app.NewSessionUseCase(&mockTokenIssuer{}, store).IsAuthenticated(ctx)
		assert.ErrorIs(t, err, errRedis)
	})
}
