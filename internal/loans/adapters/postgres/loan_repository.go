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

// LoanRepository реализует интерфейс repositories.LoanRepository.
type LoanRepository struct {
	db DB
}

// NewLoanRepository создает новый репозиторий займов.
func NewLoanRepository(db DB) repositories.LoanRepository {
	return &LoanRepository{db: db}
}

const selectLoanQuery = `SELECT l.id, l.loan_date, l.due_date, l.requester_id, l.category_code,
                b.id, b.isbn, b.title, b.author, b.description, b.publication_date, b.publisher
         FROM loans l
         JOIN books b ON b.id = l.book_id`

// Save сохраняет новый заем и возвращает присвоенный идентификатор.
func (r *LoanRepository) Save(ctx context.Context, loan *entities.Loan) (int, error) {
	log := logger.Log(ctx).With(zap.String("method", "LoanRepository.Save"))
	log.Debug(ctx, "saving loan", zap.String("requesterID", loan.RequesterID))

	var loanID int
	err := r.db.QueryRow(ctx,
		`INSERT INTO loans (loan_date, due_date, requester_id, category_code, book_id)
         VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		loan.LoanDate, loan.DueDate, loan.RequesterID, loan.Category.Code(), loan.Book.ID,
	).Scan(&loanID)

	if err != nil {
		log.Error(ctx, "failed to save loan", zap.Error(err))
		return 0, fmt.Errorf("failed to save loan: %w", err)
	}

	log.Debug(ctx, "loan saved", zap.Int("loanID", loanID))
	return loanID, nil
}

// FindByID находит заем по идентификатору вместе с книгой.
// Возвращает (nil, nil), если записи нет.
func (r *LoanRepository) FindByID(ctx context.Context, id int) (*entities.Loan, error) {
	log := logger.Log(ctx).With(zap.String("method", "LoanRepository.FindByID"))
	log.Debug(ctx, "getting loan", zap.Int("loanID", id))

	row := r.db.QueryRow(ctx, selectLoanQuery+` WHERE l.id = $1`, id)

	loan, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "loan not found", zap.Int("loanID", id))
			return nil, nil
		}
		log.Error(ctx, "failed to get loan", zap.Error(err))
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}

	return loan, nil
}

// FindActiveByRequester находит активный заем читателя.
// Возвращает (nil, nil), если активных займов нет.
func (r *LoanRepository) FindActiveByRequester(ctx context.Context, requesterID string) (*entities.Loan, error) {
	log := logger.Log(ctx).With(zap.String("method", "LoanRepository.FindActiveByRequester"))
	log.Debug(ctx, "getting active loan", zap.String("requesterID", requesterID))

	row := r.db.QueryRow(ctx, selectLoanQuery+` WHERE l.requester_id = $1 ORDER BY l.id LIMIT 1`, requesterID)

	loan, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "no active loan", zap.String("requesterID", requesterID))
			return nil, nil
		}
		log.Error(ctx, "failed to get active loan", zap.Error(err))
		return nil, fmt.Errorf("failed to get active loan: %w", err)
	}

	return loan, nil
}

// CountActiveByRequester возвращает количество активных займов читателя.
func (r *LoanRepository) CountActiveByRequester(ctx context.Context, requesterID string) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "LoanRepository.CountActiveByRequester"))
	log.Debug(ctx, "counting active loans", zap.String("requesterID", requesterID))

	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM loans WHERE requester_id = $1`,
		requesterID,
	).Scan(&count)

	if err != nil {
		log.Error(ctx, "failed to count active loans", zap.Error(err))
		return 0, fmt.Errorf("failed to count active loans: %w", err)
	}

	return count, nil
}

// scanLoan восстанавливает заем из строки выборки selectLoanQuery.
// Код категории в строке всегда из фиксированного набора, иначе запись повреждена.
func scanLoan(row pgx.Row) (*entities.Loan, error) {
	var (
		loan         entities.Loan
		book         entities.Book
		categoryCode int
	)

	err := row.Scan(
		&loan.ID, &loan.LoanDate, &loan.DueDate, &loan.RequesterID, &categoryCode,
		&book.ID, &book.ISBN, &book.Title, &book.Author, &book.Description, &book.PublicationDate, &book.Publisher,
	)
	if err != nil {
		return nil, err
	}

	category, err := entities.ResolveCategory(categoryCode)
	if err != nil {
		return nil, fmt.Errorf("stored loan has invalid category code %d: %w", categoryCode, err)
	}

	loan.Category = category
	loan.Book = &book
	return &loan, nil
}
