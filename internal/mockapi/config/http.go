package config

import (
	"fmt"
	"time"
)

// HTTPConfig - настройки HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"MOCKAPI_HTTP_HOST" env-default:"127.0.0.1"`
	Port         int           `yaml:"port" env:"MOCKAPI_HTTP_PORT" env-default:"8000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"MOCKAPI_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"MOCKAPI_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	BodyLimit    int           `yaml:"body_limit" env:"MOCKAPI_HTTP_BODY_LIMIT" env-default:"10485760"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
