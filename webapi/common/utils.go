// Package common holds the response envelopes and request binding shared by
// the gateway routes.
package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

var validate = validator.New()

// ProblemDetailsJSON writes err as problem details. The status comes from
// ErrorToStatusCode unless an int is passed in extra; a string in extra
// replaces the detail. Internal errors never expose their text.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, extra ...any) error {
	status := ErrorToStatusCode(err)
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	var errs any
	for _, e := range extra {
		switch v := e.(type) {
		case int:
			status = v
		case string:
			detail = v
		default:
			errs = v
		}
	}
	if status == fiber.StatusInternalServerError {
		detail = domain.ErrInternal.Error()
	}

	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
		Errors:   errs,
	}
	return c.Status(status).JSON(pd, "application/problem+json")
}

// SuccessResponseJSON wraps data in a Response.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.Is(err, domain.ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.As(err, &fe):
		return fe.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate decodes the JSON body into T, rejecting unknown fields, and
// validates it with go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and
// returns nil together with the result of writing it.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}

// Caller returns the id of the verified bearer. A missing or unreadable
// token is reported as domain.ErrUnauthorized.
func Caller(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := middleware.UserID(c)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, err.Error())
	}
	return id, nil
}
