// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"biblioteca/internal/loans/ports/repositories"
)

// DB - минимальный интерфейс пула соединений, используемый репозиториями.
// Его реализуют как *pgxpool.Pool, так и pgxmock в тестах.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	db DB
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(db DB) *RepositoryFactory {
	return &RepositoryFactory{db: db}
}

// BookRepository возвращает репозиторий каталога книг.
func (f *RepositoryFactory) BookRepository() repositories.BookRepository {
	return NewBookRepository(f.db)
}

// LoanRepository возвращает репозиторий займов.
func (f *RepositoryFactory) LoanRepository() repositories.LoanRepository {
	return NewLoanRepository(f.db)
}
