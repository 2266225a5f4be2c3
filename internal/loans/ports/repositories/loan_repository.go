package repositories

import (
	"context"

	"biblioteca/internal/loans/domain/entities"
)

// LoanRepository определяет интерфейс хранилища займов.
// Методы Find* возвращают (nil, nil), если записи нет.
// Активным считается любой сохраненный заем: сценария возврата нет.
type LoanRepository interface {
	Save(ctx context.Context, loan *entities.Loan) (int, error)
	FindByID(ctx context.Context, id int) (*entities.Loan, error)
	FindActiveByRequester(ctx context.Context, requesterID string) (*entities.Loan, error)
	CountActiveByRequester(ctx context.Context, requesterID string) (int64, error)
}
