// Package config содержит конфигурацию тестового бэкенда.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "albuhara/pkg/config"
	"albuhara/pkg/logger"
)

const (
	LogConfigLoaded     = "mock api configuration loaded"
	ErrFailedLoadConfig = "failed to load mock api configuration"

	serviceName = "mockapi"
)

// Config - полная конфигурация тестового бэкенда.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load читает конфигурацию из окружения и, если path не пуст, из файла.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, serviceName, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Duration("access_token_ttl", cfg.Auth.AccessTokenTTL),
		zap.Duration("refresh_token_ttl", cfg.Auth.RefreshTokenTTL),
		zap.Bool("rotate_refresh_tokens", cfg.Auth.RotateRefreshTokens),
		zap.String("log_level", cfg.Logging.Level))

	return cfg, nil
}
