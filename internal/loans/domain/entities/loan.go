package entities

import "time"

// Loan представляет заем книги. Заем создается один раз в момент
// одобрения и после сохранения не изменяется: сценария возврата в
// сервисе нет.
type Loan struct {
	ID          int
	LoanDate    time.Time
	DueDate     time.Time
	RequesterID string
	Category    Category
	Book        *Book
}

// NewLoan creates a loan for the given requester and book.
// Дата займа всегда устанавливается в текущий день.
func NewLoan(requesterID string, category Category, book *Book, dueDate time.Time) *Loan {
	return &Loan{
		LoanDate:    time.Now(),
		DueDate:     dueDate,
		RequesterID: requesterID,
		Category:    category,
		Book:        book,
	}
}
