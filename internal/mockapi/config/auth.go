package config

import "time"

// AuthConfig - учетная запись администратора и параметры JWT.
type AuthConfig struct {
	SecretKey           string        `yaml:"secret_key" env:"MOCKAPI_JWT_SECRET_KEY" env-default:"dev-secret-change-me"`
	AccessTokenTTL      time.Duration `yaml:"access_token_ttl" env:"MOCKAPI_JWT_ACCESS_TOKEN_TTL" env-default:"5m"`
	RefreshTokenTTL     time.Duration `yaml:"refresh_token_ttl" env:"MOCKAPI_JWT_REFRESH_TOKEN_TTL" env-default:"24h"`
	RotateRefreshTokens bool          `yaml:"rotate_refresh_tokens" env:"MOCKAPI_JWT_ROTATE_REFRESH_TOKENS" env-default:"false"`
	AdminUsername       string        `yaml:"admin_username" env:"MOCKAPI_ADMIN_USERNAME" env-default:"admin"`
	AdminPassword       string        `yaml:"admin_password" env:"MOCKAPI_ADMIN_PASSWORD" env-default:"admin"`
	BCryptCost          int           `yaml:"bcrypt_cost" env:"MOCKAPI_BCRYPT_COST" env-default:"10"`
}
