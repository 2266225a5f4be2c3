package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"biblioteca/internal/loans/domain/entities"
	"biblioteca/internal/loans/ports/repositories"
)

// ErrBookAlreadyExists возвращается при попытке повторно зарегистрировать ISBN.
var ErrBookAlreadyExists = errors.New("book with this isbn already exists")

// RegisterBookCommand - входные данные регистрации книги в каталоге.
type RegisterBookCommand struct {
	ISBN            string
	Title           string
	Author          string
	Description     string
	PublicationDate time.Time
	Publisher       string
}

// BookUseCase представляет собой бизнес-логику каталога книг.
type BookUseCase struct {
	bookRepo repositories.BookRepository
}

// NewBookUseCase создает новый экземпляр BookUseCase.
func NewBookUseCase(bookRepo repositories.BookRepository) *BookUseCase {
	return &BookUseCase{bookRepo: bookRepo}
}

// RegisterBook регистрирует новую книгу в каталоге.
func (uc *BookUseCase) RegisterBook(ctx context.Context, cmd RegisterBookCommand) (int, error) {
	existing, err := uc.bookRepo.FindByISBN(ctx, cmd.ISBN)
	if err != nil {
		return 0, fmt.Errorf("failed to look up book: %w", err)
	}
	if existing != nil {
		return 0, ErrBookAlreadyExists
	}

	book := entities.NewBook(cmd.ISBN, cmd.Title, cmd.Author, cmd.Description, cmd.PublicationDate, cmd.Publisher)
	bookID, err := uc.bookRepo.Save(ctx, book)
	if err != nil {
		return 0, fmt.Errorf("failed to save book: %w", err)
	}

	return bookID, nil
}

// GetBook возвращает книгу по ISBN.
func (uc *BookUseCase) GetBook(ctx context.Context, isbn string) (*entities.Book, error) {
	book, err := uc.bookRepo.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	return book, nil
}
