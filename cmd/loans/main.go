// Package main реализует точку входа сервиса займов.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	httpadapter "biblioteca/internal/loans/adapters/http"
	"biblioteca/internal/loans/adapters/postgres"
	"biblioteca/internal/loans/adapters/services"
	"biblioteca/internal/loans/app"
	"biblioteca/internal/loans/config"
	"biblioteca/internal/loans/db"
	domainservices "biblioteca/internal/loans/domain/services"
	"biblioteca/pkg/logger"
	"biblioteca/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "LOANS_LOGGER_MODE"
	EnvLoggerLevel = "LOANS_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "loans service started"
	LogServiceShutdownDone = "loans service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHandlers        = "initializing HTTP handlers"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, &cfg.Postgres, "migrations/loans")
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		bookRepo := repoFactory.BookRepository()
		loanRepo := repoFactory.LoanRepository()

		log.Info(ctx, LogInitServices)
		tokenService := services.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		passwordService := services.NewBcrypt()
		calculator := domainservices.NewDueDateCalculator()
		validator := domainservices.NewLoanValidator(loanRepo)

		log.Info(ctx, LogInitUseCases)
		loanUseCase := app.NewLoanUseCase(loanRepo, bookRepo, calculator, validator)
		bookUseCase := app.NewBookUseCase(bookRepo)
		authUseCase := app.NewAuthUseCase(tokenService, passwordService, cfg.Auth.Librarian, cfg.Auth.PasswordHash)

		log.Info(ctx, LogInitHandlers)
		loanHandler := httpadapter.NewLoanHandler(loanUseCase)
		bookHandler := httpadapter.NewBookHandler(bookUseCase)
		authHandler := httpadapter.NewAuthHandler(authUseCase)
		healthHandler := httpadapter.NewHealthHandler(database)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpadapter.SetupRouter(fiberApp, loanHandler, bookHandler, authHandler, healthHandler, tokenService)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			// Закрытие соединений с базой данных.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
