package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca/internal/loans/adapters/postgres"
	"biblioteca/internal/loans/domain/entities"
)

var errConnection = errors.New("connection refused")

func newBookFixture() *entities.Book {
	return &entities.Book{
		ISBN:            "978-3-16-148410-0",
		Title:           "Cien años de soledad",
		Author:          "Gabriel García Márquez",
		Description:     "Novela",
		PublicationDate: time.Date(1967, 5, 30, 0, 0, 0, 0, time.UTC),
		Publisher:       "Sudamericana",
	}
}

func TestBookRepositorySave(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := postgres.NewBookRepository(mockDB)
	book := newBookFixture()

	t.Run("success", func(t *testing.T) {
		mockDB.ExpectQuery(regexp.QuoteMeta(`INSERT INTO books`)).
			WithArgs(book.ISBN, book.Title, book.Author, book.Description, book.PublicationDate, book.Publisher).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(7))

		bookID, err := repo.Save(context.Background(), book)

		require.NoError(t, err)
		assert.Equal(t, 7, bookID)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mockDB.ExpectQuery(regexp.QuoteMeta(`INSERT INTO books`)).
			WithArgs(book.ISBN, book.Title, book.Author, book.Description, book.PublicationDate, book.Publisher).
			WillReturnError(errConnection)

		_, err := repo.Save(context.Background(), book)

		require.Error(t, err)
		assert.ErrorIs(t, err, errConnection)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestBookRepositoryFindByISBN(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := postgres.NewBookRepository(mockDB)
	book := newBookFixture()

	columns := []string{"id", "isbn", "title", "author", "description", "publication_date", "publisher"}

	t.Run("success", func(t *testing.T) {
		mockDB.ExpectQuery(regexp.QuoteMeta(`SELECT id, isbn, title, author, description, publication_date, publisher`)).
			WithArgs(book.ISBN).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(7, book.ISBN, book.Title, book.Author, book.Description, book.PublicationDate, book.Publisher))

		found, err := repo.FindByISBN(context.Background(), book.ISBN)

		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, 7, found.ID)
		assert.Equal(t, book.Title, found.Title)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("not found returns nil without error", func(t *testing.T) {
		mockDB.ExpectQuery(regexp.QuoteMeta(`SELECT id, isbn, title, author, description, publication_date, publisher`)).
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		found, err := repo.FindByISBN(context.Background(), "missing")

		require.NoError(t, err)
		assert.Nil(t, found)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mockDB.ExpectQuery(regexp.QuoteMeta(`SELECT id, isbn, title, author, description, publication_date, publisher`)).
			WithArgs(book.ISBN).
			WillReturnError(errConnection)

		_, err := repo.FindByISBN(context.Background(), book.ISBN)

		require.Error(t, err)
		assert.ErrorIs(t, err, errConnection)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})
}
