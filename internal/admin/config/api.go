package config

import (
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// APIConfig описывает REST-бэкенд сайта. RateLimit задается в запросах
// в секунду, 0 отключает ограничение.
type APIConfig struct {
	BaseURL     string        `yaml:"base_url" env:"ADMIN_API_BASE_URL" env-default:"http://localhost:8000"`
	TokenPath   string        `yaml:"token_path" env:"ADMIN_API_TOKEN_PATH" env-default:"/api/auth/token/"`
	RefreshPath string        `yaml:"refresh_path" env:"ADMIN_API_REFRESH_PATH" env-default:"/api/auth/token/refresh/"`
	Timeout     time.Duration `yaml:"timeout" env:"ADMIN_API_TIMEOUT" env-default:"30s"`
	RateLimit   float64       `yaml:"rate_limit" env:"ADMIN_API_RATE_LIMIT" env-default:"0"`
	RateBurst   int           `yaml:"rate_burst" env:"ADMIN_API_RATE_BURST" env-default:"1"`
}

// TokenURL возвращает полный адрес выдачи токенов.
func (c *APIConfig) TokenURL() string {
	return joinURL(c.BaseURL, c.TokenPath)
}

// RefreshURL возвращает полный адрес обновления токена доступа.
func (c *APIConfig) RefreshURL() string {
	return joinURL(c.BaseURL, c.RefreshPath)
}

// Limiter возвращает ограничитель частоты запросов или nil, если он отключен.
func (c *APIConfig) Limiter() *rate.Limiter {
	if c.RateLimit <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(c.RateLimit), max(c.RateBurst, 1))
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
