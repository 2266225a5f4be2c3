package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"biblioteca/internal/loans/app"
	"biblioteca/internal/loans/domain/entities"
	"biblioteca/internal/loans/domain/services"
)

// handleError переводит доменные ошибки в HTTP статусы и тело {"message": ...}.
// Нарушения бизнес-правил доходят сюда без изменений и отдаются клиенту
// своим текстом; все прочие ошибки скрываются за непрозрачным 500.
func handleError(ctx fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, entities.ErrInvalidCategoryCode),
		errors.Is(err, services.ErrRequesterAlreadyHasLoan),
		errors.Is(err, app.ErrBookNotFound):
		status = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, app.ErrLoanNotFound):
		status = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, app.ErrBookAlreadyExists):
		status = fiber.StatusConflict
		message = err.Error()
	case errors.Is(err, app.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
		message = err.Error()
	}

	if err := ctx.Status(status).JSON(fiber.Map{"message": message}); err != nil {
		return fmt.Errorf("error sending error response: %w", err)
	}
	return nil
}
