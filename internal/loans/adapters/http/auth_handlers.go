package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"biblioteca/internal/loans/app"
	"biblioteca/pkg/logger"
)

// LogHandlerLogin - сообщение логирования обработчика входа.
const LogHandlerLogin = "handling login request"

// LoginRequest - тело запроса на вход.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandler обработчик HTTP-запросов аутентификации.
type AuthHandler struct {
	auth *app.AuthUseCase
}

// NewAuthHandler создает новый экземпляр обработчика аутентификации.
func NewAuthHandler(auth *app.AuthUseCase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login обрабатывает запрос на вход и выпускает токен доступа.
func (h *AuthHandler) Login(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "AuthHandler.Login"))
	log.Debug(reqCtx, LogHandlerLogin)

	var req LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	result, err := h.auth.Login(reqCtx, req.Username, req.Password)
	if err != nil {
		log.Error(reqCtx, "failed to login", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(result); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
