package rpc

import (
	"errors"

	"github.com/amirasaad/finance/pkg/domain"
)

// Code classifies a failed call. It travels on the wire in place of the Go
// error value.
type Code string

const (
	CodeNotFound     Code = "NOT_FOUND"
	CodeForbidden    Code = "FORBIDDEN"
	CodeBadRequest   Code = "BAD_REQUEST"
	CodeConflict     Code = "CONFLICT"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeInternal     Code = "INTERNAL"
)

var codeSentinels = map[Code]error{
	CodeNotFound:     domain.ErrNotFound,
	CodeForbidden:    domain.ErrForbidden,
	CodeBadRequest:   domain.ErrBadRequest,
	CodeConflict:     domain.ErrConflict,
	CodeUnauthorized: domain.ErrUnauthorized,
	CodeInternal:     domain.ErrInternal,
}

// Error is a coded failure returned by a service.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// Unwrap lets errors.Is match the domain sentinel for the code.
func (e *Error) Unwrap() error {
	if sentinel, ok := codeSentinels[e.Code]; ok {
		return sentinel
	}
	return domain.ErrInternal
}

// FromError codes err. Errors outside the domain taxonomy become a generic
// internal error so their text never reaches a client.
func FromError(err error) *Error {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	for _, code := range []Code{CodeNotFound, CodeForbidden, CodeBadRequest, CodeConflict, CodeUnauthorized} {
		if errors.Is(err, codeSentinels[code]) {
			return &Error{Code: code, Message: err.Error()}
		}
	}
	return &Error{Code: CodeInternal, Message: domain.ErrInternal.Error()}
}
