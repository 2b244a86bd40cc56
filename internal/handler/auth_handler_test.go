package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/middleware"
	"quizdeck/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAuthApp(authService *MockAuthService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewAuthHandler(authService, validation.NewValidator())
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/auth/login", h.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	return resp
}

func TestAuthHandler_Register_Success(t *testing.T) {
	authService := new(MockAuthService)
	authService.On("Register", mock.Anything, mock.AnythingOfType("*dto.RegisterRequest")).Return(&dto.AuthResponse{
		Token: "token123",
		User:  dto.UserResponse{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: "student"},
	}, nil)
	app := newAuthApp(authService)

	resp := postJSON(t, app, "/api/auth/register", dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret1", Role: "student",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.AuthResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "token123", body.Token)
	assert.Equal(t, "u1", body.User.ID)
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	authService := new(MockAuthService)
	app := newAuthApp(authService)

	resp := postJSON(t, app, "/api/auth/register", dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "12345", Role: "student",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	authService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	authService := new(MockAuthService)
	authService.On("Register", mock.Anything, mock.Anything).
		Return(nil, domain.NewDuplicateEmailError("alice@example.com"))
	app := newAuthApp(authService)

	resp := postJSON(t, app, "/api/auth/register", dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret1", Role: "student",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	app := newAuthApp(new(MockAuthService))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	authService := new(MockAuthService)
	authService.On("Login", mock.Anything, mock.AnythingOfType("*dto.LoginRequest")).Return(&dto.AuthResponse{
		Token: "token123",
		User:  dto.UserResponse{ID: "u1"},
	}, nil)
	app := newAuthApp(authService)

	resp := postJSON(t, app, "/api/auth/login", dto.LoginRequest{
		Email: "alice@example.com", Password: "secret1",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	authService := new(MockAuthService)
	authService.On("Login", mock.Anything, mock.Anything).
		Return(nil, domain.NewInvalidCredentialsError())
	app := newAuthApp(authService)

	resp := postJSON(t, app, "/api/auth/login", dto.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
