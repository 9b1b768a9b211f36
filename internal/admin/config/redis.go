package config

import (
	"time"

	"albuhara/pkg/db/redis"
)

// RedisConfig - подключение к Redis для хранилища токенов.
type RedisConfig struct {
	Host     string        `yaml:"host" env:"ADMIN_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"ADMIN_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"ADMIN_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"ADMIN_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"ADMIN_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"ADMIN_REDIS_TIMEOUT" env-default:"5s"`
}

// ClientConfig переводит настройки в конфигурацию общего клиента Redis.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}
