package services

import (
	"context"
	"errors"
	"fmt"

	"biblioteca/internal/loans/domain/entities"
	"biblioteca/internal/loans/ports/repositories"
)

// ErrRequesterAlreadyHasLoan возвращается, когда читатель гостевой
// категории уже имеет активный заем.
var ErrRequesterAlreadyHasLoan = errors.New("requester already has an active loan")

// LoanValidator проверяет бизнес-правила выдачи книг.
type LoanValidator struct {
	loanRepo repositories.LoanRepository
}

// NewLoanValidator создает новый валидатор займов.
func NewLoanValidator(loanRepo repositories.LoanRepository) *LoanValidator {
	return &LoanValidator{loanRepo: loanRepo}
}

// ValidateCategoryCode проверяет, что код категории входит в допустимый набор.
// Ошибка ResolveCategory пробрасывается без изменений.
func (v *LoanValidator) ValidateCategoryCode(code int) error {
	if _, err := entities.ResolveCategory(code); err != nil {
		return err
	}
	return nil
}

// ValidateGuestLimit проверяет ограничение гостевой категории: не более
// одного активного займа на читателя. Остальные категории ограничению
// не подлежат независимо от количества займов.
func (v *LoanValidator) ValidateGuestLimit(ctx context.Context, requesterID string, category entities.Category) error {
	if !category.IsGuest() {
		return nil
	}

	active, err := v.loanRepo.CountActiveByRequester(ctx, requesterID)
	if err != nil {
		return fmt.Errorf("failed to count active loans: %w", err)
	}
	if active > 0 {
		return ErrRequesterAlreadyHasLoan
	}
	return nil
}
