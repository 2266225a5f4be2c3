package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	httpadapter "biblioteca/internal/loans/adapters/http"
	adapterservices "biblioteca/internal/loans/adapters/services"
	"biblioteca/internal/loans/app"
	"biblioteca/internal/loans/domain/entities"
	domainservices "biblioteca/internal/loans/domain/services"
	portservices "biblioteca/internal/loans/ports/services"
)

const (
	testUsername = "librarian"
	testPassword = "secret"
	testSecret   = "test-secret-key"
)

type mockLoanRepository struct {
	mock.Mock
}

func (m *mockLoanRepository) Save(ctx context.Context, loan *entities.Loan) (int, error) {
	args := m.Called(ctx, loan)
	return args.Int(0), args.Error(1)
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id int) (*entities.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Loan), args.Error(1)
}

func (m *mockLoanRepository) FindActiveByRequester(ctx context.Context, requesterID string) (*entities.Loan, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Loan), args.Error(1)
}

func (m *mockLoanRepository) CountActiveByRequester(ctx context.Context, requesterID string) (int64, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).(int64), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(context.Context) error {
	return p.err
}

type mockBookRepository struct {
	mock.Mock
}

func (m *mockBookRepository) Save(ctx context.Context, book *entities.Book) (int, error) {
	args := m.Called(ctx, book)
	return args.Int(0), args.Error(1)
}

func (m *mockBookRepository) FindByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

// testServer собирает приложение поверх моков репозиториев с настоящими
// сервисами JWT и bcrypt, как в main.
type testServer struct {
	app      *fiber.App
	loanRepo *mockLoanRepository
	bookRepo *mockBookRepository
	pinger   *stubPinger
	tokens   portservices.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	loanRepo := new(mockLoanRepository)
	bookRepo := new(mockBookRepository)
	pinger := new(stubPinger)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	tokens := adapterservices.NewJWT(testSecret, 15*time.Minute)
	passwords := adapterservices.NewBcrypt()

	loanUseCase := app.NewLoanUseCase(
		loanRepo,
		bookRepo,
		domainservices.NewDueDateCalculator(),
		domainservices.NewLoanValidator(loanRepo),
	)
	bookUseCase := app.NewBookUseCase(bookRepo)
	authUseCase := app.NewAuthUseCase(tokens, passwords, testUsername, string(hash))

	fiberApp := fiber.New()
	httpadapter.SetupRouter(fiberApp,
		httpadapter.NewLoanHandler(loanUseCase),
		httpadapter.NewBookHandler(bookUseCase),
		httpadapter.NewAuthHandler(authUseCase),
		httpadapter.NewHealthHandler(pinger),
		tokens,
	)

	return &testServer{app: fiberApp, loanRepo: loanRepo, bookRepo: bookRepo, pinger: pinger, tokens: tokens}
}

func (s *testServer) request(t *testing.T, method, target, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var decoded map[string]any
	if len(raw) > 0 && json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()

	resp, body := s.request(t, fiber.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": testUsername,
		"password": testPassword,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token, ok := body["token"].(string)
	require.True(t, ok, "login response must contain a token")
	return token
}

func storedBook() *entities.Book {
	return &entities.Book{
		ID:              7,
		ISBN:            "978-3-16-148410-0",
		Title:           "Cien años de soledad",
		Author:          "Gabriel García Márquez",
		PublicationDate: time.Date(1967, 5, 30, 0, 0, 0, 0, time.UTC),
		Publisher:       "Sudamericana",
	}
}

func TestHealthz(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		server := newTestServer(t)

		req := httptest.NewRequest(fiber.MethodGet, "/healthz", nil)
		resp, err := server.app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "OK", string(raw))
	})

	t.Run("database unreachable", func(t *testing.T) {
		server := newTestServer(t)
		server.pinger.err = assert.AnError

		resp, body := server.request(t, fiber.MethodGet, "/healthz", "", nil)

		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "database unavailable", body["message"])
	})
}

func TestLogin(t *testing.T) {
	server := newTestServer(t)

	t.Run("success", func(t *testing.T) {
		resp, body := server.request(t, fiber.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": testUsername,
			"password": testPassword,
		})

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body["token"])
		assert.NotEmpty(t, body["expiresAt"])
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, body := server.request(t, fiber.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": testUsername,
			"password": "wrong",
		})

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.NotEmpty(t, body["message"])
	})

	t.Run("unknown username", func(t *testing.T) {
		resp, _ := server.request(t, fiber.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": "intruder",
			"password": testPassword,
		})

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAuthorizationRequired(t *testing.T) {
	server := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		resp, body := server.request(t, fiber.MethodGet, "/api/v1/loans/42", "", nil)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.NotEmpty(t, body["message"])
	})

	t.Run("garbage token", func(t *testing.T) {
		resp, _ := server.request(t, fiber.MethodGet, "/api/v1/loans/42", "not-a-jwt", nil)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestBorrowBookEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := newTestServer(t)
		token := server.login(t)

		server.bookRepo.On("FindByISBN", mock.Anything, "978-3-16-148410-0").Return(storedBook(), nil).Once()
		server.loanRepo.On("Save", mock.Anything, mock.Anything).Return(42, nil).Once()

		resp, body := server.request(t, fiber.MethodPost, "/api/v1/loans", token, map[string]any{
			"isbn":         "978-3-16-148410-0",
			"requesterId":  "CC-1234567",
			"categoryCode": 1,
		})

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.EqualValues(t, 42, body["id"])

		dueDate, err := time.Parse(app.DueDateLayout, body["dueDate"].(string))
		require.NoError(t, err)
		assert.NotEqual(t, time.Saturday, dueDate.Weekday())
		assert.NotEqual(t, time.Sunday, dueDate.Weekday())

		server.loanRepo.AssertExpectations(t)
		server.bookRepo.AssertExpectations(t)
	})

	t.Run("invalid category code", func(t *testing.T) {
		server := newTestServer(t)
		token := server.login(t)

		resp, body := server.request(t, fiber.MethodPost, "/api/v1/loans", token, map[string]any{
			"isbn":         "978-3-16-148410-0",
			"requesterId":  "CC-1234567",
			"categoryCode": 9,
		})

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, entities.ErrInvalidCategoryCode.Error(), body["message"])
		server.loanRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("guest already has a loan", func(t *testing.T) {
		server := newTestServer(t)
		token := server.login(t)

		server.loanRepo.On("CountActiveByRequester", mock.Anything, "CC-1234567").Return(int64(1), nil).Once()

		resp, body := server.request(t, fiber.MethodPost, "/api/v1/loans", token, map[string]any{
			"isbn":         "978-3-16-148410-0",
			"requesterId":  "CC-1234567",
			"categoryCode": 3,
		})

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, domainservices.ErrRequesterAlreadyHasLoan.Error(), body["message"])
	})

	t.Run("book not in catalog", func(t *testing.T) {
		server := newTestServer(t)
		token := server.login(t)

		server.bookRepo.On("FindByISBN", mock.Anything, "000-0-00-000000-0").Return(nil, nil).Once()

		resp, body := server.request(t, fiber.MethodPost, "/api/v1/loans", token, map[string]any{
			"isbn":         "000-0-00-000000-0",
			"requesterId":  "CC-1234567",
			"categoryCode": 1,
		})

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, app.ErrBookNotFound.Error(), body["message"])
	})

	t.Run("repository failure is opaque", func(t *testing.T) {
		server := newTestServer(t)
		token := server.login(t)

		server.bookRepo.On("FindByISBN", mock.Anything, "978-3-16-148410-0").Return(storedBook(), nil).Once()
		server.loanRepo.On("Save", mock.Anything, mock.Anything).Return(0, assert.AnError).Once()

		resp, body := server.request(t, fiber.MethodPost, "/api/v1/loans", token, map[string]any{
			"isbn":         "978-3-16-148410-0",
			"requesterId":  "CC-1234567",
			"categoryCode": 1,
		})

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "internal server error", body["message"])
	})
}

func TestGetLoanEndpoint(t *testing.T) {
	category, err := entities.ResolveCategory(2)
	require.NoError(t, err)

	loan := &entities.Loan{
		ID:          42,
		LoanDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
		RequesterID: "CC-1234567",
		Category:    category,
		Book:        storedBook(),
	}

	t.Run("success", func(t *testing.T) {
		server := newTestServer(t)
		token := server.login(t)

		server.loanRepo.On("FindByID", mock.Anything, 42).Return(loan, nil).Once()

		resp, body := server.request(t, fiber.MethodGet, "/api/v1/loans/42", token, nil)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.EqualValues(t, 42, body["id"])
		assert.Equal(t, "978-3-16-148410-0", body["isbn"])
		assert.Equal(t, "11/01/2024", body["dueDate"])
		assert.Equal(t, "CC-1234567", body["requesterId"])
		assert.EqualValues(t, 2, body["categoryCode"])
	})

	t.Run("not found", func(t *testing.T) {
		server := newTestServer(t)
		token := server.login(t)

		server.loanRepo.On("FindByID", mock.Anything, 404).Return(nil, nil).Once()

		resp, body := server.request(t, fiber.MethodGet, "/api/v1/loans/404", token, nil)

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, app.ErrLoanNotFound.Error(), body["message"])
	})

	t.Run("non numeric id", func(t *testing.T) {
		server := newTestServer(t)
		token := server.login(t)

		resp, body := server.request(t, fiber.MethodGet, "/api/v1/loans/abc", token, nil)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid loan id", body["message"])
	})
}

func TestBookEndpoints(t *testing.T) {
	t.Run("register book", func(t *testing.T) {
		server := newTestServer(t)
		token := server.login(t)

		server.bookRepo.On("FindByISBN", mock.Anything, "978-3-16-148410-0").Return(nil, nil).Once()
		server.bookRepo.On("Save", mock.Anything, mock.Anything).Return(7, nil).Once()

		resp, body := server.request(t, fiber.MethodPost, "/api/v1/books", token, map[string]string{
			"isbn":            "978-3-16-148410-0",
			"title":           "Cien años de soledad",
			"author":          "Gabriel García Márquez",
			"publicationDate": "1967-05-30",
			"publisher":       "Sudamericana",
		})

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.EqualValues(t, 7, body["id"])
	})

	t.Run("register duplicate isbn", func(t *testing.T) {
		server := newTestServer(t)
		token := server.login(t)

		server.bookRepo.On("FindByISBN", mock.Anything, "978-3-16-148410-0").Return(storedBook(), nil).Once()

		resp, body := server.request(t, fiber.MethodPost, "/api/v1/books", token, map[string]string{
			"isbn":            "978-3-16-148410-0",
			"title":           "Cien años de soledad",
			"publicationDate": "1967-05-30",
		})

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, app.ErrBookAlreadyExists.Error(), body["message"])
		server.bookRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("register with malformed publication date", func(t *testing.T) {
		server := newTestServer(t)
		token := server.login(t)

		resp, _ := server.request(t, fiber.MethodPost, "/api/v1/books", token, map[string]string{
			"isbn":            "978-3-16-148410-0",
			"publicationDate": "30/05/1967",
		})

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("get book", func(t *testing.T) {
		server := newTestServer(t)
		token := server.login(t)

		server.bookRepo.On("FindByISBN", mock.Anything, "978-3-16-148410-0").Return(storedBook(), nil).Once()

		resp, body := server.request(t, fiber.MethodGet, "/api/v1/books/978-3-16-148410-0", token, nil)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Cien años de soledad", body["title"])
	})

	t.Run("get missing book", func(t *testing.T) {
		server := newTestServer(t)
		token := server.login(t)

		server.bookRepo.On("FindByISBN", mock.Anything, "missing").Return(nil, nil).Once()

		resp, body := server.request(t, fiber.MethodGet, "/api/v1/books/missing", token, nil)

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, app.ErrBookNotFound.Error(), body["message"])
	})
}

func TestUnknownRoute(t *testing.T) {
	server := newTestServer(t)

	resp, body := server.request(t, fiber.MethodGet, "/unknown", "", nil)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "route not found", body["message"])
}
