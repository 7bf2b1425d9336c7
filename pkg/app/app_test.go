package app

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/finance/infra/eventbus"
	"github.com/amirasaad/finance/internal/testdb"
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/amirasaad/finance/pkg/service/auth"
	"github.com/amirasaad/finance/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	utils.HashCost = 4
}

func testConfig(transport string) *config.App {
	return &config.App{
		Env: "test",
		Auth: &config.Auth{Jwt: &config.Jwt{
			Secret:        "access-secret",
			Expiry:        time.Minute,
			RefreshSecret: "refresh-secret",
			RefreshExpiry: time.Hour,
		}},
		RPC: &config.RPC{Transport: transport, Timeout: time.Second},
	}
}

func newDeps(t *testing.T, out *bytes.Buffer) *Deps {
	t.Helper()
	uow, _ := testdb.NewUoW(t)
	logger := slog.New(slog.NewTextHandler(out, nil))
	cfg := testConfig("memory")
	tokens, err := auth.NewTokenIssuer(cfg.Auth.Jwt)
	require.NoError(t, err)
	return &Deps{
		Uow:      uow,
		EventBus: infraeventbus.NewWithMemory(logger),
		Tokens:   tokens,
		Logger:   logger,
	}
}

func TestNew_MemoryTransportServesEveryService(t *testing.T) {
	var out bytes.Buffer
	a, err := New(newDeps(t, &out), testConfig("memory"))
	require.NoError(t, err)
	for _, service := range rpc.Services {
		assert.True(t, a.Server.Handles(service), service)
	}

	ctx := context.Background()
	tokens, err := rpc.Call[dto.AuthTokens](ctx, a.Client, rpc.ServiceAuthentication, rpc.SignUp, uuid.Nil, dto.SignUpRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "Str0ng!Passw0rd",
	})
	require.NoError(t, err)
	require.NotNil(t, tokens.User)

	bank, err := rpc.Call[dto.BankRead](ctx, a.Client, rpc.ServiceBanks, rpc.AddBalance, tokens.User.ID, dto.BalanceChange{
		Amount: decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "12.50", bank.Balance.StringFixed(2))
	assert.Contains(t, out.String(), "ledger entry recorded")
}

func TestNew_UnknownTransport(t *testing.T) {
	var out bytes.Buffer
	_, err := New(newDeps(t, &out), testConfig("carrier-pigeon"))
	assert.Error(t, err)
}

func TestNew_RedisTransportNeedsClient(t *testing.T) {
	var out bytes.Buffer
	_, err := New(newDeps(t, &out), testConfig("redis"))
	assert.Error(t, err)
}
