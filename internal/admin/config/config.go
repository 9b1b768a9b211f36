// Package config содержит конфигурацию клиента админки.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "albuhara/pkg/config"
	"albuhara/pkg/logger"
)

const (
	LogConfigLoaded     = "admin client configuration loaded"
	ErrFailedLoadConfig = "failed to load admin configuration"

	serviceName = "admin"
)

// Config - полная конфигурация клиента админки.
type Config struct {
	API         APIConfig         `yaml:"api"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Redis       RedisConfig       `yaml:"redis"`
	Breaker     BreakerConfig     `yaml:"breaker"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// Load читает конфигурацию из окружения и, если path не пуст, из файла.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, serviceName, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Credentials.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Debug(ctx, LogConfigLoaded,
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.Duration("api_timeout", cfg.API.Timeout),
		zap.String("credentials_backend", cfg.Credentials.Backend),
		zap.Bool("breaker_enabled", cfg.Breaker.Enabled),
		zap.String("log_level", cfg.Logging.Level))

	return cfg, nil
}
