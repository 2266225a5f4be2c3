package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"biblioteca/internal/loans/ports/services"
	"biblioteca/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"
)

// UsernameKey - ключ Locals с именем аутентифицированного пользователя.
const UsernameKey = "username"

// NewAuthMiddleware создает новое промежуточное ПО для проверки Bearer токена.
func NewAuthMiddleware(tokens services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx, ok := ctx.Locals(RequestContextKey).(context.Context)
		if !ok {
			requestCtx = ctx.Context()
		}
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": ErrorNoAuthHeader,
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": ErrorInvalidTokenFormat,
			})
		}

		username, err := tokens.ValidateToken(requestCtx, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": ErrorInvalidToken,
			})
		}

		ctx.Locals(UsernameKey, username)

		return ctx.Next()
	}
}
