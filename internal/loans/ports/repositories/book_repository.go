// Package repositories defines repository interfaces for the loans service.
package repositories

import (
	"context"

	"biblioteca/internal/loans/domain/entities"
)

// BookRepository определяет интерфейс каталога книг.
// FindByISBN возвращает (nil, nil), если книги с таким ISBN нет.
type BookRepository interface {
	Save(ctx context.Context, book *entities.Book) (int, error)
	FindByISBN(ctx context.Context, isbn string) (*entities.Book, error)
}
