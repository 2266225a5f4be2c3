package config

import "time"

// AuthConfig содержит настройки аутентификации библиотекаря.
// Пароль хранится только в виде bcrypt-хэша.
type AuthConfig struct {
	JWTSecret    string        `yaml:"jwt_secret" env:"LOANS_AUTH_JWT_SECRET" env-default:"h2K0sdwbzmv7yGxbQ4sIahMuvvNoe889pbEzZql0SU8n"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"LOANS_AUTH_TOKEN_TTL" env-default:"15m"`
	Librarian    string        `yaml:"librarian" env:"LOANS_AUTH_LIBRARIAN" env-default:"librarian"`
	PasswordHash string        `yaml:"password_hash" env:"LOANS_AUTH_PASSWORD_HASH" env-default:"$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"`
}
