package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizdeck/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func appReturning(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NoError(t, err)
	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	errs := domain.ValidationErrors{
		domain.NewMissingFieldError("title"),
		domain.NewOutOfRangeError("timeSpent", -1, 0, 100),
	}
	resp, body := doRequest(t, appReturning(errs))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, string(domain.CodeValidation), body["code"])
	assert.Len(t, body["errors"], 2)
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err    *domain.DomainError
		status int
	}{
		{domain.NewQuizNotFoundError("q1"), http.StatusNotFound},
		{domain.NewResultNotFoundError("r1"), http.StatusNotFound},
		{domain.NewDuplicateEmailError("a@b.co"), http.StatusBadRequest},
		{domain.NewInvalidRoleError("admin"), http.StatusBadRequest},
		{domain.NewExtractionError(errors.New("bad pdf")), http.StatusBadRequest},
		{domain.NewGenerationError(errors.New("llm down")), http.StatusBadRequest},
		{domain.NewInvalidCredentialsError(), http.StatusUnauthorized},
		{domain.NewUnauthorizedError("Please authenticate"), http.StatusUnauthorized},
		{domain.NewForbiddenError("Faculty access required"), http.StatusForbidden},
		{domain.NewInternalError("boom", errors.New("cause")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		resp, body := doRequest(t, appReturning(tc.err))
		assert.Equal(t, tc.status, resp.StatusCode, string(tc.err.Code))
		assert.Equal(t, string(tc.err.Code), body["code"])
	}
}

func TestErrorHandler_UnknownErrorHidesDetail(t *testing.T) {
	resp, body := doRequest(t, appReturning(errors.New("connection string with password")))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", body["message"])
}

func TestErrorHandler_FiberError(t *testing.T) {
	resp, body := doRequest(t, appReturning(fiber.NewError(fiber.StatusBadRequest, "Invalid request body")))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", body["message"])
}
