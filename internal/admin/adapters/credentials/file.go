package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"albuhara/internal/admin/domain/entities"
	"albuhara/internal/admin/ports/credentials"
	"albuhara/pkg/logger"
)

const (
	errReadCredentialsFile   = "failed to read credentials file"
	errDecodeCredentialsFile = "failed to decode credentials file"
	errWriteCredentialsFile  = "failed to write credentials file"
	errRemoveCredentialsFile = "failed to remove credentials file"

	logCredentialsSaved   = "credentials saved"
	logCredentialsCleared = "credentials cleared"
)

// FileStore хранит пару токенов в JSON-файле. Запись атомарна:
// временный файл с правами 0600 и rename поверх основного.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore создает хранилище по указанному пути. Файл создается при первой записи.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

var _ credentials.Store = (*FileStore)(nil)

// Path возвращает путь к файлу.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(_ context.Context) (entities.Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *FileStore) Set(ctx context.Context, creds entities.Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.save(creds); err != nil {
		return err
	}
	logger.Log(ctx).Debug(ctx, logCredentialsSaved, zap.String("path", f.path))
	return nil
}

func (f *FileStore) SetAccessToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	creds, err := f.load()
	if err != nil {
		return err
	}
	if !creds.HasRefresh() {
		return credentials.ErrNoSession
	}
	creds.AccessToken = token
	if err := f.save(creds); err != nil {
		return err
	}
	logger.Log(ctx).Debug(ctx, logCredentialsSaved, zap.String("path", f.path))
	return nil
}

func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", errRemoveCredentialsFile, err)
	}
	logger.Log(ctx).Debug(ctx, logCredentialsCleared, zap.String("path", f.path))
	return nil
}

func (f *FileStore) load() (entities.Credentials, error) {
	var creds entities.Credentials

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return creds, nil
		}
		return creds, fmt.Errorf("%s: %w", errReadCredentialsFile, err)
	}
	if len(data) == 0 {
		return creds, nil
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return entities.Credentials{}, fmt.Errorf("%s: %w", errDecodeCredentialsFile, err)
	}
	return creds, nil
}

func (f *FileStore) save(creds entities.Credentials) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", errWriteCredentialsFile, err)
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", errWriteCredentialsFile, err)
	}
	// Уникальное имя временного файла: файл могут писать несколько процессов.
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w", errWriteCredentialsFile, err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", errWriteCredentialsFile, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", errWriteCredentialsFile, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("%s: %w", errWriteCredentialsFile, err)
	}
	return nil
}
