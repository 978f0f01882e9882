package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bookmarket/backend/internal/handlers"
	authmw "github.com/bookmarket/backend/internal/middleware/auth"
	"github.com/bookmarket/backend/internal/models"
	"github.com/bookmarket/backend/internal/repo"
	"github.com/bookmarket/backend/internal/service"
	httpserver "github.com/bookmarket/backend/internal/transport/http"
	"github.com/bookmarket/backend/internal/validation"
)

type app struct {
	e      *echo.Echo
	store  *repo.GormRepo
	tokens *service.TokenService
}

func newApp(t *testing.T) *app {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to connect to in-memory db")
	require.NoError(t, db.AutoMigrate(&models.Customer{}, &models.Book{}, &models.RefreshToken{}))

	store := repo.New(db)
	tokens := &service.TokenService{
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}

	bookSvc := &service.BookService{Repo: store}
	customerSvc := &service.CustomerService{Repo: store, Books: bookSvc}
	authSvc := &service.AuthService{Repo: store, Tokens: tokens}

	e := echo.New()
	e.Validator = validation.New()

	httpserver.Register(e, &httpserver.Deps{
		Authenticator:   authmw.NewAuthenticator(tokens, store, httpserver.PublicRoutes()),
		AuthHandler:     &handlers.AuthHandler{Svc: authSvc},
		CustomerHandler: &handlers.CustomerHandler{Svc: customerSvc},
		BookHandler:     &handlers.BookHandler{Svc: bookSvc},
	})

	return &app{e: e, store: store, tokens: tokens}
}

func (a *app) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *app) signup(t *testing.T, name, email, password string) {
	t.Helper()
	rec := a.do(t, "POST", "/api/customers", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, 201, rec.Code)
}

func (a *app) login(t *testing.T, email, password string) (access, refresh string) {
	t.Helper()
	rec := a.do(t, "POST", "/api/auth/token", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, 200, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body["accessToken"])
	require.NotEmpty(t, body["refreshToken"])
	return body["accessToken"], body["refreshToken"]
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
