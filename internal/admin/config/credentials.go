package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Поддерживаемые хранилища токенов.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// ErrUnknownBackend - неизвестное хранилище токенов.
var ErrUnknownBackend = errors.New("unknown credentials backend")

// CredentialsConfig описывает, где хранится пара токенов.
type CredentialsConfig struct {
	Backend  string        `yaml:"backend" env:"ADMIN_CREDENTIALS_BACKEND" env-default:"file"`
	FilePath string        `yaml:"file_path" env:"ADMIN_CREDENTIALS_FILE"`
	RedisKey string        `yaml:"redis_key" env:"ADMIN_CREDENTIALS_REDIS_KEY" env-default:"albuhara:admin:credentials"`
	RedisTTL time.Duration `yaml:"redis_ttl" env:"ADMIN_CREDENTIALS_REDIS_TTL" env-default:"0s"`
	Profile  string        `yaml:"profile" env:"ADMIN_PROFILE" env-default:"default"`
}

// Validate проверяет имя хранилища.
func (c *CredentialsConfig) Validate() error {
	switch c.Backend {
	case BackendFile, BackendRedis, BackendMemory:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
}

// ResolveFilePath возвращает путь к файлу токенов: явный или
// <UserConfigDir>/albuhara/<profile>.json.
func (c *CredentialsConfig) ResolveFilePath() (string, error) {
	if c.FilePath != "" {
		return c.FilePath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(dir, "albuhara", c.Profile+".json"), nil
}

// ResolveRedisKey возвращает ключ Redis с учетом профиля.
func (c *CredentialsConfig) ResolveRedisKey() string {
	return c.RedisKey + ":" + c.Profile
}
