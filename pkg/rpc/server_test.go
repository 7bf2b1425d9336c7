package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoPayload struct {
	Name string `json:"name"`
}

func newTestServer() *Server {
	srv := NewServer(slog.Default())
	srv.Register(ServiceBanks, GetBank, func(_ context.Context, req *Request) (any, error) {
		in, err := Bind[echoPayload](req)
		if err != nil {
			return nil, err
		}
		return map[string]string{"hello": in.Name}, nil
	})
	srv.Register(ServiceBanks, AddBalance, func(context.Context, *Request) (any, error) {
		return nil, fmt.Errorf("%w: amount must be greater than 0", domain.ErrBadRequest)
	})
	srv.Register(ServiceBanks, SubtractBalance, func(context.Context, *Request) (any, error) {
		return nil, errors.New("pq: connection refused")
	})
	srv.Register(ServiceBanks, UpdateCurrency, func(context.Context, *Request) (any, error) {
		panic("nil map")
	})
	return srv
}

func TestServer_Dispatch(t *testing.T) {
	srv := newTestServer()
	reply := srv.Handle(context.Background(), &Request{
		Service: ServiceBanks,
		Pattern: GetBank,
		Payload: json.RawMessage(`{"name":"ana"}`),
	})
	require.Nil(t, reply.Error)
	assert.JSONEq(t, `{"hello":"ana"}`, string(reply.Data))
	assert.True(t, srv.Handles(ServiceBanks))
	assert.False(t, srv.Handles(ServiceIncomes))
}

func TestServer_UnknownPattern(t *testing.T) {
	reply := newTestServer().Handle(context.Background(), &Request{Service: ServiceBanks, Pattern: "NOPE"})
	require.NotNil(t, reply.Error)
	assert.Equal(t, CodeNotFound, reply.Error.Code)
}

func TestServer_ErrorCoding(t *testing.T) {
	srv := newTestServer()
	tests := []struct {
		name    string
		pattern Pattern
		payload string
		code    Code
		message string
	}{
		{name: "domain error keeps its message", pattern: AddBalance, code: CodeBadRequest, message: "bad request: amount must be greater than 0"},
		{name: "unknown error is hidden", pattern: SubtractBalance, code: CodeInternal, message: "internal error"},
		{name: "panic is internal", pattern: UpdateCurrency, code: CodeInternal, message: "internal error"},
		{name: "unknown payload field", pattern: GetBank, payload: `{"name":"a","extra":1}`, code: CodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &Request{Service: ServiceBanks, Pattern: tt.pattern}
			if tt.payload != "" {
				req.Payload = json.RawMessage(tt.payload)
			}
			reply := srv.Handle(context.Background(), req)
			require.NotNil(t, reply.Error)
			assert.Equal(t, tt.code, reply.Error.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, reply.Error.Message)
			}
		})
	}
}

func TestError_UnwrapsToSentinel(t *testing.T) {
	var err error = &Error{Code: CodeForbidden, Message: "not yours"}
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, &Error{Code: "WHAT"}, domain.ErrInternal)
}

func TestParseIDAndRequireUser(t *testing.T) {
	id := uuid.New()
	got, err := ParseID(&Request{ID: id.String()})
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID(&Request{ID: "42"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = RequireUser(&Request{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
