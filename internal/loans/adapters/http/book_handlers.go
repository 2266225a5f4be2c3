package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"biblioteca/internal/loans/app"
	"biblioteca/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerRegisterBook = "handling register book request"
	LogHandlerGetBook      = "handling get book request"

	ErrMsgInvalidPublicationDate = "invalid publication date, expected YYYY-MM-DD"
)

// publicationDateLayout - формат даты публикации во входных данных.
const publicationDateLayout = "2006-01-02"

// RegisterBookRequest - тело запроса на регистрацию книги в каталоге.
type RegisterBookRequest struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Description     string `json:"description"`
	PublicationDate string `json:"publicationDate"`
	Publisher       string `json:"publisher"`
}

// RegisterBookResponse - идентификатор зарегистрированной книги.
type RegisterBookResponse struct {
	ID int `json:"id"`
}

// BookHandler обработчик HTTP-запросов каталога книг.
type BookHandler struct {
	books *app.BookUseCase
}

// NewBookHandler создает новый экземпляр обработчика каталога.
func NewBookHandler(books *app.BookUseCase) *BookHandler {
	return &BookHandler{books: books}
}

// RegisterBook обрабатывает запрос на регистрацию книги.
func (h *BookHandler) RegisterBook(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "BookHandler.RegisterBook"))
	log.Debug(reqCtx, LogHandlerRegisterBook)

	var req RegisterBookRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	publicationDate, err := time.Parse(publicationDateLayout, req.PublicationDate)
	if err != nil {
		log.Error(reqCtx, ErrMsgInvalidPublicationDate, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": ErrMsgInvalidPublicationDate,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	bookID, err := h.books.RegisterBook(reqCtx, app.RegisterBookCommand{
		ISBN:            req.ISBN,
		Title:           req.Title,
		Author:          req.Author,
		Description:     req.Description,
		PublicationDate: publicationDate,
		Publisher:       req.Publisher,
	})
	if err != nil {
		log.Error(reqCtx, "failed to register book", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(RegisterBookResponse{ID: bookID}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetBook обрабатывает запрос на получение книги по ISBN.
func (h *BookHandler) GetBook(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "BookHandler.GetBook"))
	log.Debug(reqCtx, LogHandlerGetBook)

	book, err := h.books.GetBook(reqCtx, ctx.Params("isbn"))
	if err != nil {
		// Для точечного запроса каталога отсутствие книги - not found,
		// в отличие от выдачи, где это ошибка входных данных.
		if errors.Is(err, app.ErrBookNotFound) {
			if err := ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": err.Error(),
			}); err != nil {
				return fmt.Errorf("failed to send not found response: %w", err)
			}
			return nil
		}
		log.Error(reqCtx, "failed to get book", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(book); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
