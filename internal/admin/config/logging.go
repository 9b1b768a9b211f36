package config

import "albuhara/pkg/logger"

// LoggingConfig - настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"ADMIN_LOGGER_LEVEL" env-default:"warn"`
	Mode  string `yaml:"mode" env:"ADMIN_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}
