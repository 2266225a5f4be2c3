// Package http содержит HTTP-обработчики сервиса займов.
package http

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"biblioteca/internal/loans/adapters/http/middleware"
	"biblioteca/internal/loans/app"
	"biblioteca/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerBorrowBook = "handling borrow book request"
	LogHandlerGetLoan    = "handling get loan request"

	ErrMsgInvalidLoanID      = "invalid loan id"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// BorrowBookRequest - тело запроса на выдачу книги.
type BorrowBookRequest struct {
	ISBN         string `json:"isbn"`
	RequesterID  string `json:"requesterId"`
	CategoryCode int    `json:"categoryCode"`
}

// LoanHandler обработчик HTTP-запросов для работы с займами.
type LoanHandler struct {
	loans *app.LoanUseCase
}

// NewLoanHandler создает новый экземпляр обработчика займов.
func NewLoanHandler(loans *app.LoanUseCase) *LoanHandler {
	return &LoanHandler{loans: loans}
}

// requestContext возвращает контекст запроса с request_id, созданный
// промежуточным ПО логирования.
func requestContext(ctx fiber.Ctx) context.Context {
	if c, ok := ctx.Locals(middleware.RequestContextKey).(context.Context); ok {
		return c
	}
	return ctx.Context()
}

// BorrowBook обрабатывает запрос на выдачу книги.
func (h *LoanHandler) BorrowBook(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "LoanHandler.BorrowBook"))
	log.Debug(reqCtx, LogHandlerBorrowBook)

	var req BorrowBookRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	result, err := h.loans.BorrowBook(reqCtx, app.BorrowBookCommand{
		ISBN:         req.ISBN,
		RequesterID:  req.RequesterID,
		CategoryCode: req.CategoryCode,
	})
	if err != nil {
		log.Error(reqCtx, "failed to borrow book", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(result); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetLoan обрабатывает запрос на получение займа по идентификатору.
func (h *LoanHandler) GetLoan(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "LoanHandler.GetLoan"))
	log.Debug(reqCtx, LogHandlerGetLoan)

	loanID, err := strconv.Atoi(ctx.Params("loan_id"))
	if err != nil {
		log.Error(reqCtx, ErrMsgInvalidLoanID, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": ErrMsgInvalidLoanID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	details, err := h.loans.GetLoan(reqCtx, loanID)
	if err != nil {
		log.Error(reqCtx, "failed to get loan", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(details); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
