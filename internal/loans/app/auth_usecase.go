package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"biblioteca/internal/loans/ports/services"
)

// ErrInvalidCredentials возвращается при неверном имени пользователя или пароле.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginResult - результат успешного входа.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthUseCase представляет собой бизнес-логику входа библиотекаря.
// Учетная запись одна и задается конфигурацией сервиса.
type AuthUseCase struct {
	tokens       services.TokenService
	passwords    services.PasswordService
	username     string
	passwordHash string
}

// NewAuthUseCase создает новый экземпляр AuthUseCase.
func NewAuthUseCase(tokens services.TokenService, passwords services.PasswordService, username, passwordHash string) *AuthUseCase {
	return &AuthUseCase{
		tokens:       tokens,
		passwords:    passwords,
		username:     username,
		passwordHash: passwordHash,
	}
}

// Login проверяет учетные данные и выпускает токен доступа.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username != uc.username {
		return nil, ErrInvalidCredentials
	}

	ok, err := uc.passwords.Verify(ctx, password, uc.passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := uc.tokens.GenerateToken(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}
