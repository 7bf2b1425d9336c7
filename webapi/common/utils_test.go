package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorToStatusCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: amount", domain.ErrBadRequest), fiber.StatusBadRequest},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{domain.ErrForbidden, fiber.StatusForbidden},
		{domain.ErrNotFound, fiber.StatusNotFound},
		{domain.ErrConflict, fiber.StatusConflict},
		{&rpc.Error{Code: rpc.CodeForbidden, Message: "not yours"}, fiber.StatusForbidden},
		{fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorToStatusCode(tt.err), tt.err.Error())
	}
}

type bindInput struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"min=0"`
}

func bindApp() *fiber.App {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		in, err := BindAndValidate[bindInput](c)
		if in == nil {
			return err
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "ok", in)
	})
	return app
}

func post(t *testing.T, app *fiber.App, body string) (*http.Response, ProblemDetails) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var pd ProblemDetails
	_ = json.Unmarshal(raw, &pd)
	return resp, pd
}

func TestBindAndValidate(t *testing.T) {
	t.Parallel()
	app := bindApp()

	resp, _ := post(t, app, `{"name":"rent","count":1}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, pd := post(t, app, `{"name":"rent","extra":true}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", pd.Title)
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))

	resp, pd = post(t, app, `{"count":-1}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", pd.Title)

	resp, _ = post(t, app, `not json`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProblemDetailsJSON_HidesInternalText(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Failed", errors.New("pq: connection refused"))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	var pd ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, domain.ErrInternal.Error(), pd.Detail)
	assert.Equal(t, "/", pd.Instance)
}

func TestCaller_WithoutTokenIsUnauthorized(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, err := Caller(c)
		return ProblemDetailsJSON(c, "Unauthorized", err)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
