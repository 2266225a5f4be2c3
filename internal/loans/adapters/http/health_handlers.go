package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"biblioteca/pkg/logger"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обработчик проверки работоспособности сервиса.
type HealthHandler struct {
	storage Pinger
}

// NewHealthHandler создает новый экземпляр обработчика работоспособности.
func NewHealthHandler(storage Pinger) *HealthHandler {
	return &HealthHandler{storage: storage}
}

// Check отвечает 200 OK, если база данных доступна.
func (h *HealthHandler) Check(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)

	if err := h.storage.Ping(reqCtx); err != nil {
		logger.Log(reqCtx).Error(reqCtx, "health check failed", zap.Error(err))
		if err := ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "database unavailable",
		}); err != nil {
			return fmt.Errorf("failed to send health response: %w", err)
		}
		return nil
	}

	return ctx.SendString("OK")
}
