// Package app implements application business logic for the loans service.
package app

import (
	"context"
	"errors"
	"fmt"

	"biblioteca/internal/loans/domain/entities"
	"biblioteca/internal/loans/domain/services"
	"biblioteca/internal/loans/ports/repositories"
)

// Ошибки уровня бизнес-логики.
var (
	ErrLoanNotFound = errors.New("loan not found")
	ErrBookNotFound = errors.New("book not found")
)

// DueDateLayout - формат dd/MM/yyyy, в котором дата возврата отдается наружу.
const DueDateLayout = "02/01/2006"

// BorrowBookCommand - входные данные запроса на выдачу книги.
type BorrowBookCommand struct {
	ISBN         string
	RequesterID  string
	CategoryCode int
}

// BorrowBookResult - квитанция о выдаче книги.
type BorrowBookResult struct {
	ID      int    `json:"id"`
	DueDate string `json:"dueDate"`
}

// LoanDetails - консолидированное представление займа с полями книги.
type LoanDetails struct {
	ID           int    `json:"id"`
	ISBN         string `json:"isbn"`
	Title        string `json:"title"`
	DueDate      string `json:"dueDate"`
	RequesterID  string `json:"requesterId"`
	CategoryCode int    `json:"categoryCode"`
}

// LoanUseCase представляет собой бизнес-логику выдачи и просмотра займов.
type LoanUseCase struct {
	loanRepo   repositories.LoanRepository
	bookRepo   repositories.BookRepository
	calculator *services.DueDateCalculator
	validator  *services.LoanValidator
}

// NewLoanUseCase создает новый экземпляр LoanUseCase.
func NewLoanUseCase(
	loanRepo repositories.LoanRepository,
	bookRepo repositories.BookRepository,
	calculator *services.DueDateCalculator,
	validator *services.LoanValidator,
) *LoanUseCase {
	return &LoanUseCase{
		loanRepo:   loanRepo,
		bookRepo:   bookRepo,
		calculator: calculator,
		validator:  validator,
	}
}

// BorrowBook выдает книгу читателю. Каждый шаг прерывает сценарий при
// ошибке: частичных записей не бывает, заем сохраняется последним.
func (uc *LoanUseCase) BorrowBook(ctx context.Context, cmd BorrowBookCommand) (*BorrowBookResult, error) {
	if err := uc.validator.ValidateCategoryCode(cmd.CategoryCode); err != nil {
		return nil, err
	}

	category, err := entities.ResolveCategory(cmd.CategoryCode)
	if err != nil {
		return nil, err
	}

	if err := uc.validator.ValidateGuestLimit(ctx, cmd.RequesterID, category); err != nil {
		return nil, err
	}

	book, err := uc.bookRepo.FindByISBN(ctx, cmd.ISBN)
	if err != nil {
		return nil, fmt.Errorf("failed to look up book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	dueDate := uc.calculator.Calculate(category)

	loan := entities.NewLoan(cmd.RequesterID, category, book, dueDate)
	loanID, err := uc.loanRepo.Save(ctx, loan)
	if err != nil {
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}

	return &BorrowBookResult{
		ID:      loanID,
		DueDate: dueDate.Format(DueDateLayout),
	}, nil
}

// GetLoan возвращает консолидированное представление займа по его идентификатору.
func (uc *LoanUseCase) GetLoan(ctx context.Context, loanID int) (*LoanDetails, error) {
	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	if loan == nil {
		return nil, ErrLoanNotFound
	}

	return &LoanDetails{
		ID:           loan.ID,
		ISBN:         loan.Book.ISBN,
		Title:        loan.Book.Title,
		DueDate:      loan.DueDate.Format(DueDateLayout),
		RequesterID:  loan.RequesterID,
		CategoryCode: loan.Category.Code(),
	}, nil
}
