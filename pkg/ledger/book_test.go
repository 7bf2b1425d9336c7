package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/amirasaad/finance/internal/testdb"
	"github.com/amirasaad/finance/pkg/domain"
	domainledger "github.com/amirasaad/finance/pkg/domain/ledger"
	"github.com/amirasaad/finance/pkg/ledger"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_UpdatesBalanceAndRecordsEntry(t *testing.T) {
	uow, _ := testdb.NewUoW(t)
	userID := testdb.SeedUser(t, uow, "100.00")
	ctx := context.Background()

	var res *ledger.Result
	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		res, err = ledger.Post(ctx, uow, ledger.Posting{
			UserID:      userID,
			Type:        domainledger.EntryAdjustment,
			Amount:      decimal.RequireFromString("-30.456"),
			Description: "Manual withdrawal of 30.46 EUR",
		})
		return err
	})
	require.NoError(t, err)

	assert.True(t, res.Bank.Balance.Equal(decimal.RequireFromString("69.54")))
	assert.True(t, res.Entry.BalanceAfter.Equal(res.Bank.Balance))
	assert.True(t, testdb.Balance(t, uow, userID).Equal(decimal.RequireFromString("69.54")))

	entries := testdb.Entries(t, uow, userID)
	require.Len(t, entries, 1)
	assert.Equal(t, domainledger.EntryAdjustment, entries[0].Type)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("-30.46")))
}

func TestPost_NegativeBalanceAllowed(t *testing.T) {
	uow, _ := testdb.NewUoW(t)
	userID := testdb.SeedUser(t, uow, "10.00")
	ctx := context.Background()

	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		_, err := ledger.Post(ctx, uow, ledger.Posting{
			UserID: userID,
			Type:   domainledger.EntryExpense,
			Amount: decimal.NewFromInt(-25),
		})
		return err
	})
	require.NoError(t, err)
	assert.True(t, testdb.Balance(t, uow, userID).Equal(decimal.NewFromInt(-15)))
}

func TestPost_MissingBankIsNotFound(t *testing.T) {
	uow, _ := testdb.NewUoW(t)
	ctx := context.Background()

	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		_, err := ledger.Post(ctx, uow, ledger.Posting{
			UserID: uuid.New(),
			Type:   domainledger.EntryIncome,
			Amount: decimal.NewFromInt(5),
		})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPost_RollsBackWithCaller(t *testing.T) {
	uow, _ := testdb.NewUoW(t)
	userID := testdb.SeedUser(t, uow, "50.00")
	ctx := context.Background()
	boom := errors.New("later step failed")

	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := ledger.Post(ctx, uow, ledger.Posting{
			UserID: userID,
			Type:   domainledger.EntryIncome,
			Amount: decimal.NewFromInt(20),
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.True(t, testdb.Balance(t, uow, userID).Equal(decimal.NewFromInt(50)))
	assert.Empty(t, testdb.Entries(t, uow, userID))
}

func TestPost_RejectsUnknownEntryType(t *testing.T) {
	uow, _ := testdb.NewUoW(t)
	userID := testdb.SeedUser(t, uow, "50.00")
	ctx := context.Background()

	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		_, err := ledger.Post(ctx, uow, ledger.Posting{
			UserID: userID,
			Type:   "gift",
			Amount: decimal.NewFromInt(1),
		})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.True(t, testdb.Balance(t, uow, userID).Equal(decimal.NewFromInt(50)))
}

func TestPost_ConcurrentPostingsAreNotLost(t *testing.T) {
	uow, _ := testdb.NewUoW(t)
	userID := testdb.SeedUser(t, uow, "0.00")
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- uow.Do(ctx, func(uow repository.UnitOfWork) error {
				_, err := ledger.Post(ctx, uow, ledger.Posting{
					UserID: userID,
					Type:   domainledger.EntryIncome,
					Amount: decimal.NewFromInt(1),
				})
				return err
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.True(t, testdb.Balance(t, uow, userID).Equal(decimal.NewFromInt(n)))
	entries := testdb.Entries(t, uow, userID)
	require.Len(t, entries, n)
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(n)))
}
