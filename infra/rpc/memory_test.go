package rpc

import (
	"context"
	"log/slog"
	"testing"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type balance struct {
	Amount decimal.Decimal `json:"amount"`
}

func TestMemory_RoundTripsThroughJSON(t *testing.T) {
	srv := rpc.NewServer(slog.Default())
	srv.Register(rpc.ServiceBanks, rpc.AddBalance, func(_ context.Context, req *rpc.Request) (any, error) {
		in, err := rpc.Bind[balance](req)
		if err != nil {
			return nil, err
		}
		return balance{Amount: in.Amount.Add(decimal.NewFromInt(1))}, nil
	})
	client := rpc.NewClient(NewMemory(srv))

	out, err := rpc.Call[balance](context.Background(), client, rpc.ServiceBanks, rpc.AddBalance, uuid.New(),
		balance{Amount: decimal.RequireFromString("10.25")})
	require.NoError(t, err)
	assert.True(t, out.Amount.Equal(decimal.RequireFromString("11.25")))
}

func TestMemory_UnknownServiceIsNotFound(t *testing.T) {
	client := rpc.NewClient(NewMemory(rpc.NewServer(slog.Default())))
	_, err := rpc.Call[balance](context.Background(), client, "ghost", rpc.FindOne, uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
