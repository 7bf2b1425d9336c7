// Package testdb opens throwaway sqlite databases carrying the full schema,
// for service and handler tests that need real transactions.
package testdb

import (
	"context"
	"fmt"
	"testing"
	"time"

	infrarepo "github.com/amirasaad/finance/infra/repository"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a migrated in-memory database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the shared in-memory database alive and
	// serialises writers the way a row lock would.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, infrarepo.AutoMigrate(db))
	return db
}

// NewUoW returns a unit of work over a fresh database.
func NewUoW(t testing.TB) (*infrarepo.UoW, *gorm.DB) {
	t.Helper()
	db := New(t)
	return infrarepo.NewUoW(db), db
}

// SeedUser creates a user with an empty account and a bank holding balance.
func SeedUser(t testing.TB, uow repository.UnitOfWork, balance string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	userID := uuid.New()
	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if err := users.Create(ctx, &dto.UserCreate{
			ID:    userID,
			Name:  "Test User",
			Email: fmt.Sprintf("user_%s@example.com", userID.String()[:8]),
			Lang:  "fr",
		}); err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if err := accounts.Create(ctx, &dto.AccountCreate{
			ID:                    uuid.New(),
			UserID:                userID,
			PasswordHash:          "x",
			RefreshTokenExpiresAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		return banks.Create(ctx, &dto.BankCreate{
			ID:       uuid.New(),
			UserID:   userID,
			Balance:  decimal.RequireFromString(balance),
			Currency: "EUR",
		})
	})
	require.NoError(t, err)
	return userID
}

// Balance reads the current balance of a user.
func Balance(t testing.TB, uow repository.UnitOfWork, userID uuid.UUID) decimal.Decimal {
	t.Helper()
	banks, err := uow.BankRepository()
	require.NoError(t, err)
	b, err := banks.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, b)
	return b.Balance
}

// Entries lists the ledger of a user in order.
func Entries(t testing.TB, uow repository.UnitOfWork, userID uuid.UUID) []*dto.LedgerEntryRead {
	t.Helper()
	entries, err := uow.LedgerRepository()
	require.NoError(t, err)
	list, err := entries.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	return list
}
