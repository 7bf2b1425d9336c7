package rpc

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type directTransport struct {
	srv  *Server
	last *Request
	err  error
}

func (d *directTransport) Send(ctx context.Context, req *Request) (*Reply, error) {
	d.last = req
	if d.err != nil {
		return nil, d.err
	}
	return d.srv.Handle(ctx, req), nil
}

func TestCall_DecodesReply(t *testing.T) {
	srv := NewServer(slog.Default())
	srv.Register(ServiceExpenses, FindOne, func(_ context.Context, req *Request) (any, error) {
		return map[string]string{"id": req.ID, "user": req.UserID.String()}, nil
	})
	tr := &directTransport{srv: srv}
	client := NewClient(tr)
	userID := uuid.New()

	out, err := Call[map[string]string](context.Background(), client, ServiceExpenses, FindOne, userID, nil, WithID("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", out["id"])
	assert.Equal(t, userID.String(), out["user"])
	assert.Nil(t, tr.last.Payload)
}

func TestCall_ReturnsCodedError(t *testing.T) {
	srv := NewServer(slog.Default())
	srv.Register(ServiceIncomes, FindOne, func(context.Context, *Request) (any, error) {
		return nil, domain.ErrForbidden
	})
	client := NewClient(&directTransport{srv: srv})

	_, err := Call[struct{}](context.Background(), client, ServiceIncomes, FindOne, uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	var rpcErr *Error
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, CodeForbidden, rpcErr.Code)
}

func TestCall_TransportFailureIsInternal(t *testing.T) {
	client := NewClient(&directTransport{err: errors.New("timeout")})
	_, err := Call[struct{}](context.Background(), client, ServiceBanks, GetBank, uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrInternal)
}
