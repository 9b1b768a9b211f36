package config

import (
	"time"

	"albuhara/pkg/logger"
)

// LoggingConfig - настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"MOCKAPI_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"MOCKAPI_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}

// ShutdownConfig - настройки корректного завершения работы.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"MOCKAPI_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5"`
}

// GetTimeout возвращает таймаут завершения в виде Duration.
func (c *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
