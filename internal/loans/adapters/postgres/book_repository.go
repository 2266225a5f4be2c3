package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"biblioteca/internal/loans/domain/entities"
	"biblioteca/internal/loans/ports/repositories"
	"biblioteca/pkg/logger"
)

// BookRepository реализует интерфейс repositories.BookRepository.
type BookRepository struct {
	db DB
}

// NewBookRepository создает новый репозиторий каталога книг.
func NewBookRepository(db DB) repositories.BookRepository {
	return &BookRepository{db: db}
}

// Save сохраняет новую книгу в каталоге.
func (r *BookRepository) Save(ctx context.Context, book *entities.Book) (int, error) {
	log := logger.Log(ctx).With(zap.String("method", "BookRepository.Save"))
	log.Debug(ctx, "saving book", zap.String("isbn", book.ISBN))

	var bookID int
	err := r.db.QueryRow(ctx,
		`INSERT INTO books (isbn, title, author, description, publication_date, publisher)
         VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		book.ISBN, book.Title, book.Author, book.Description, book.PublicationDate, book.Publisher,
	).Scan(&bookID)

	if err != nil {
		log.Error(ctx, "failed to save book", zap.Error(err))
		return 0, fmt.Errorf("failed to save book: %w", err)
	}

	log.Debug(ctx, "book saved", zap.Int("bookID", bookID))
	return bookID, nil
}

// FindByISBN находит книгу по ISBN. Возвращает (nil, nil), если книги нет.
func (r *BookRepository) FindByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("method", "BookRepository.FindByISBN"))
	log.Debug(ctx, "looking up book", zap.String("isbn", isbn))

	var book entities.Book
	err := r.db.QueryRow(ctx,
		`SELECT id, isbn, title, author, description, publication_date, publisher
         FROM books
         WHERE isbn = $1`,
		isbn,
	).Scan(&book.ID, &book.ISBN, &book.Title, &book.Author, &book.Description, &book.PublicationDate, &book.Publisher)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "book not found", zap.String("isbn", isbn))
			return nil, nil
		}
		log.Error(ctx, "failed to find book", zap.Error(err))
		return nil, fmt.Errorf("failed to find book: %w", err)
	}

	return &book, nil
}
