package repository

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestUoW_DoAndGetRepository(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		for _, typ := range []reflect.Type{
			repository.UserRepositoryType,
			repository.AccountRepositoryType,
			repository.BankRepositoryType,
			repository.LedgerRepositoryType,
			repository.ExpenseRepositoryType,
			repository.IncomeRepositoryType,
			repository.BudgetRepositoryType,
			repository.EventRepositoryType,
		} {
			repoAny, err := txUow.GetRepository(typ)
			require.NoError(t, err)
			assert.True(t, reflect.TypeOf(repoAny).Implements(typ), typ.String())
		}
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_TypeSafeMethods(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	users, err := uow.UserRepository()
	require.NoError(t, err)
	assert.NotNil(t, users)

	banks, err := uow.BankRepository()
	require.NoError(t, err)
	assert.NotNil(t, banks)

	entries, err := uow.LedgerRepository()
	require.NoError(t, err)
	assert.NotNil(t, entries)
}

func TestUoW_UnsupportedRepository(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	_, err := uow.GetRepository(reflect.TypeOf(""))
	assert.Error(t, err)
}

func TestUoW_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_BalanceLockedInsideTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)
	userID := uuid.New()
	bankID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "banks" WHERE user_id = $1 ORDER BY "banks"."id" LIMIT $2 FOR UPDATE`)).
		WithArgs(userID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "balance", "currency"}).
			AddRow(bankID.String(), userID.String(), "10.00", "EUR"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "banks" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		banks, err := txUow.BankRepository()
		require.NoError(t, err)
		b, err := banks.GetByUserIDForUpdate(context.Background(), userID)
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.True(t, b.Balance.Equal(decimal.RequireFromString("10")))
		return banks.UpdateBalance(context.Background(), b.ID, b.Balance.Add(decimal.NewFromInt(5)), b.LastUpdatedAt)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_LedgerInsertSharesTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "transactions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	failAfterInsert := errors.New("balance write failed")
	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		entries, err := txUow.LedgerRepository()
		require.NoError(t, err)
		require.NoError(t, entries.Create(context.Background(), &dto.LedgerEntryCreate{
			ID:          uuid.New(),
			UserID:      uuid.New(),
			Type:        "income",
			Amount:      decimal.NewFromInt(5),
			Description: "Income: salary",
		}))
		return failAfterInsert
	})
	assert.ErrorIs(t, err, failAfterInsert)
	assert.NoError(t, mock.ExpectationsWereMet())
}
