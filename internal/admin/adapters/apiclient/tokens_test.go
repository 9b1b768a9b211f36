package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"albuhara/internal/admin/adapters/apiclient"
	"albuhara/internal/admin/domain/entities"
)

func TestTokenEndpoint_Obtain(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    entities.Credentials
		wantErr error
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"access":"A1","refresh":"R1"}`,
			want:   entities.Credentials{AccessToken: "A1", RefreshToken: "R1"},
		},
		{
			name:    "wrong password",
			status:  http.StatusUnauthorized,
			body:    `{"detail":"No active account found with the given credentials"}`,
			wantErr: apiclient.ErrInvalidCredentials,
		},
		{
			name:    "missing field",
			status:  http.StatusBadRequest,
			body:    `{"password":["This field is required."]}`,
			wantErr: apiclient.ErrInvalidCredentials,
		},
		{
			name:    "backend failure",
			status:  http.StatusInternalServerError,
			wantErr: apiclient.ErrServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/auth/token/", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Empty(t, r.Header.Get("Authorization"))
				_ = json.NewDecoder(r.Body).Decode(&got)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			endpoint := apiclient.NewTokenEndpoint(server.Client(),
				server.URL+"/api/auth/token/", server.URL+"/api/auth/token/refresh/")

			creds, err := endpoint.Obtain(context.Background(), "admin", "secret")

			assert.Equal(t, map[string]string{"username": "admin", "password": "secret"}, got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, creds)
		})
	}
}

func TestTokenEndpoint_ObtainIncompletePair(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"access":"A1"}`))
	}))
	defer server.Close()

	endpoint := apiclient.NewTokenEndpoint(server.Client(), server.URL, server.URL)
	_, err := endpoint.Obtain(context.Background(), "admin", "secret")
	assert.Error(t, err)
}

func TestTokenEndpoint_Refresh(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		want     entities.Credentials
		rejected bool
	}{
		{
			name:   "access only",
			status: http.StatusOK,
			body:   `{"access":"A2"}`,
			want:   entities.Credentials{AccessToken: "A2"},
		},
		{
			name:   "rotated refresh",
			status: http.StatusOK,
			body:   `{"access":"A2","refresh":"R2"}`,
			want:   entities.Credentials{AccessToken: "A2", RefreshToken: "R2"},
		},
		{
			name:     "expired refresh token",
			status:   http.StatusUnauthorized,
			body:     `{"detail":"Token is invalid or expired","code":"token_not_valid"}`,
			rejected: true,
		},
		{
			name:     "no access token",
			status:   http.StatusOK,
			body:     `{}`,
			rejected: true,
		},
		{
			name:     "garbage",
			status:   http.StatusOK,
			body:     `<html>`,
			rejected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var payload map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				assert.Equal(t, map[string]string{"refresh": "R1"}, payload)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			endpoint := apiclient.NewTokenEndpoint(server.Client(), "", server.URL+"/api/auth/token/refresh/")
			creds, err := endpoint.Refresh(context.Background(), "R1")

			if tt.rejected {
				assert.ErrorIs(t, err, apiclient.ErrRefreshRejected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, creds)
		})
	}
}

func TestTokenEndpoint_RefreshRelativeURL(t *testing.T) {
	endpoint := apiclient.NewTokenEndpoint(http.DefaultClient, "", "/api/auth/token/refresh/")
	_, err := endpoint.Refresh(context.Background(), "R1")
	assert.ErrorIs(t, err, apiclient.ErrInvalidBaseURL)
}
