package bank_test

import (
	"context"
	"log/slog"
	"testing"

	infraeventbus "github.com/amirasaad/finance/infra/eventbus"
	infrarpc "github.com/amirasaad/finance/infra/rpc"
	"github.com/amirasaad/finance/internal/testdb"
	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/events"
	domainledger "github.com/amirasaad/finance/pkg/domain/ledger"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/amirasaad/finance/pkg/service/bank"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*bank.Service, *infraeventbus.MemoryEventBus, uuid.UUID, func() decimal.Decimal) {
	t.Helper()
	uow, _ := testdb.NewUoW(t)
	bus := infraeventbus.NewWithMemory(slog.Default())
	userID := testdb.SeedUser(t, uow, "100.00")
	balance := func() decimal.Decimal { return testdb.Balance(t, uow, userID) }
	return bank.New(uow, bus, slog.Default()), bus, userID, balance
}

func TestGetBank(t *testing.T) {
	svc, _, userID, _ := newService(t)

	b, err := svc.GetBank(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "EUR", b.Currency)
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(100)))

	_, err = svc.GetBank(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddAndSubtractBalance(t *testing.T) {
	uow, _ := testdb.NewUoW(t)
	bus := infraeventbus.NewWithMemory(slog.Default())
	userID := testdb.SeedUser(t, uow, "100.00")
	svc := bank.New(uow, bus, slog.Default())
	ctx := context.Background()

	b, err := svc.AddBalance(ctx, userID, dto.BalanceChange{Amount: decimal.RequireFromString("25.50")})
	require.NoError(t, err)
	assert.True(t, b.Balance.Equal(decimal.RequireFromString("125.50")))

	b, err = svc.SubtractBalance(ctx, userID, dto.BalanceChange{
		Amount:      decimal.RequireFromString("200"),
		Description: "rent",
	})
	require.NoError(t, err)
	assert.True(t, b.Balance.Equal(decimal.RequireFromString("-74.50")), "negative balances are allowed")

	entries := testdb.Entries(t, uow, userID)
	require.Len(t, entries, 2)
	assert.Equal(t, domainledger.EntryAdjustment, entries[0].Type)
	assert.Equal(t, "Manual deposit of 25.50 EUR", entries[0].Description)
	assert.True(t, entries[1].Amount.Equal(decimal.NewFromInt(-200)))
	assert.Equal(t, "rent", entries[1].Description)
	assert.True(t, entries[1].BalanceAfter.Equal(b.Balance))

	published := bus.Published()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventTypeLedgerEntryRecorded.String(), published[0].Type())
}

func TestAdjustBalance_RejectsNonPositiveAmount(t *testing.T) {
	svc, bus, userID, balance := newService(t)

	for _, amount := range []string{"0", "-5"} {
		_, err := svc.AddBalance(context.Background(), userID, dto.BalanceChange{
			Amount: decimal.RequireFromString(amount),
		})
		assert.ErrorIs(t, err, domain.ErrBadRequest)
	}
	assert.True(t, balance().Equal(decimal.NewFromInt(100)))
	assert.Empty(t, bus.Published())
}

func TestUpdateCurrency_DoesNotConvert(t *testing.T) {
	uow, _ := testdb.NewUoW(t)
	bus := infraeventbus.NewWithMemory(slog.Default())
	userID := testdb.SeedUser(t, uow, "100.00")
	svc := bank.New(uow, bus, slog.Default())

	b, err := svc.UpdateCurrency(context.Background(), userID, dto.CurrencyChange{Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, "USD", b.Currency)
	assert.True(t, testdb.Balance(t, uow, userID).Equal(decimal.NewFromInt(100)))
	assert.Empty(t, testdb.Entries(t, uow, userID))

	published := bus.Published()
	require.Len(t, published, 1)
	changed, ok := published[0].(events.BankCurrencyChanged)
	require.True(t, ok)
	assert.Equal(t, "EUR", changed.From)
	assert.Equal(t, "USD", changed.To)
}

func TestUpdateCurrency_Invalid(t *testing.T) {
	svc, _, userID, _ := newService(t)
	for _, code := range []string{"usd", "EURO", ""} {
		_, err := svc.UpdateCurrency(context.Background(), userID, dto.CurrencyChange{Currency: code})
		assert.ErrorIs(t, err, domain.ErrBadRequest, code)
	}
}

func TestController(t *testing.T) {
	svc, _, userID, _ := newService(t)
	srv := rpc.NewServer(slog.Default())
	bank.RegisterHandlers(srv, svc)
	client := rpc.NewClient(infrarpc.NewMemory(srv))
	ctx := context.Background()

	b, err := rpc.Call[dto.BankRead](ctx, client, rpc.ServiceBanks, rpc.AddBalance, userID,
		map[string]any{"amount": "10"})
	require.NoError(t, err)
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(110)))

	_, err = rpc.Call[dto.BankRead](ctx, client, rpc.ServiceBanks, rpc.AddBalance, userID,
		map[string]any{"amount": "10", "bogus": true})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = rpc.Call[dto.BankRead](ctx, client, rpc.ServiceBanks, rpc.GetBank, uuid.Nil, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
