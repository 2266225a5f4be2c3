package http

import (
	"github.com/gofiber/fiber/v3"

	"biblioteca/internal/loans/adapters/http/middleware"
	"biblioteca/internal/loans/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, loanHandler *LoanHandler, bookHandler *BookHandler, authHandler *AuthHandler, healthHandler *HealthHandler, tokens services.TokenService) {
	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/healthz", healthHandler.Check)

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Auth routes (публичные).
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", authHandler.Login)

	// Защищенные маршруты.
	protected := apiV1.Group("")
	protected.Use(middleware.NewAuthMiddleware(tokens))

	protected.Post("/loans", loanHandler.BorrowBook)
	protected.Get("/loans/:loan_id", loanHandler.GetLoan)

	protected.Post("/books", bookHandler.RegisterBook)
	protected.Get("/books/:isbn", bookHandler.GetBook)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "route not found",
		})
	})
}
