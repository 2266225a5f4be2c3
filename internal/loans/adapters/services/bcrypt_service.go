package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	svc "biblioteca/internal/loans/ports/services"
)

const errMsgErrorComparingHash = "error comparing password with hash"

// ServiceBcrypt реализует интерфейс PasswordService.
type ServiceBcrypt struct{}

// NewBcrypt создает новый экземпляр сервиса bcrypt.
func NewBcrypt() svc.PasswordService {
	return &ServiceBcrypt{}
}

// Verify проверяет соответствие пароля хэшу.
func (s *ServiceBcrypt) Verify(_ context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, svc.ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", errMsgErrorComparingHash, err)
	}

	return true, nil
}
