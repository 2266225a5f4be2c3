package services

import (
	"context"
	"errors"
)

// ErrInvalidPassword возвращается для пустого пароля или хэша.
var ErrInvalidPassword = errors.New("invalid password")

// PasswordService определяет интерфейс проверки паролей.
type PasswordService interface {
	Verify(ctx context.Context, password, hash string) (bool, error)
}
