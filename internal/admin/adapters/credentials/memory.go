// Package credentials содержит реализации хранилища токенов: память, файл, Redis.
package credentials

import (
	"context"
	"sync"

	"albuhara/internal/admin/domain/entities"
	"albuhara/internal/admin/ports/credentials"
)

// MemoryStore хранит токены в памяти процесса.
type MemoryStore struct {
	mu    sync.RWMutex
	creds entities.Credentials
}

// NewMemoryStore создает хранилище, заполненное начальной парой.
func NewMemoryStore(initial entities.Credentials) *MemoryStore {
	return &MemoryStore{creds: initial}
}

var _ credentials.Store = (*MemoryStore)(nil)

func (m *MemoryStore) Get(_ context.Context) (entities.Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds, nil
}

func (m *MemoryStore) Set(_ context.Context, creds entities.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = creds
	return nil
}

func (m *MemoryStore) SetAccessToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.creds.HasRefresh() {
		return credentials.ErrNoSession
	}
	m.creds.AccessToken = token
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = entities.Credentials{}
	return nil
}
