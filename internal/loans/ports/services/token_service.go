// Package services defines service interfaces consumed by the loans service.
package services

import (
	"context"
	"errors"
	"time"
)

// Ошибки работы с токенами.
var (
	ErrGeneratingToken = errors.New("failed to generate token")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token has expired")
)

// TokenService определяет интерфейс выпуска и проверки токенов доступа.
type TokenService interface {
	GenerateToken(ctx context.Context, username string) (string, time.Time, error)
	ValidateToken(ctx context.Context, token string) (string, error)
}
