package expense_test

import (
	"context"
	"log/slog"
	"testing"

	infraeventbus "github.com/amirasaad/finance/infra/eventbus"
	infrarepo "github.com/amirasaad/finance/infra/repository"
	"github.com/amirasaad/finance/internal/testdb"
	"github.com/amirasaad/finance/pkg/domain"
	domainexpense "github.com/amirasaad/finance/pkg/domain/expense"
	domainledger "github.com/amirasaad/finance/pkg/domain/ledger"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/service/expense"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type ExpenseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	uow    *infrarepo.UoW
	bus    *infraeventbus.MemoryEventBus
	svc    *expense.Service
	userID uuid.UUID
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow, _ = testdb.NewUoW(s.T())
	s.bus = infraeventbus.NewWithMemory(slog.Default())
	s.svc = expense.New(s.uow, s.bus, slog.Default())
	s.userID = testdb.SeedUser(s.T(), s.uow, "500.00")
}

func (s *ExpenseServiceTestSuite) balance() decimal.Decimal {
	return testdb.Balance(s.T(), s.uow, s.userID)
}

// assertConserved checks that the balance equals the opening balance plus
// every ledger amount, and that each entry carries the running balance.
func (s *ExpenseServiceTestSuite) assertConserved() {
	running := d("500.00")
	for _, e := range testdb.Entries(s.T(), s.uow, s.userID) {
		running = running.Add(e.Amount)
		s.True(e.BalanceAfter.Equal(running), "entry %s balance_after", e.ID)
	}
	s.True(s.balance().Equal(running), "balance %s != %s", s.balance(), running)
}

func (s *ExpenseServiceTestSuite) create(amount string, split ...domainexpense.SplitPercentage) *dto.ExpenseRead {
	e, err := s.svc.Create(s.ctx, s.userID, dto.CreateExpenseRequest{
		Name:             "Groceries",
		Category:         "food",
		Amount:           d(amount),
		SplitPercentages: split,
	})
	s.Require().NoError(err)
	return e
}

func (s *ExpenseServiceTestSuite) TestCreate_DebitsFullAmount() {
	e := s.create("42.10")

	s.True(s.balance().Equal(d("457.90")))
	entries := testdb.Entries(s.T(), s.uow, s.userID)
	s.Require().Len(entries, 1)
	s.Equal(domainledger.EntryExpense, entries[0].Type)
	s.Equal("Expense: Groceries", entries[0].Description)
	s.Require().NotNil(entries[0].ExpenseID)
	s.Equal(e.ID, *entries[0].ExpenseID)
	s.Len(s.bus.Published(), 1)
	s.assertConserved()
}

func (s *ExpenseServiceTestSuite) TestCreate_SplitUsesEqualShare() {
	s.create("100.00",
		domainexpense.SplitPercentage{Name: "A", Percentage: 10},
		domainexpense.SplitPercentage{Name: "B", Percentage: 90},
	)

	s.True(s.balance().Equal(d("450.00")))
	entries := testdb.Entries(s.T(), s.uow, s.userID)
	s.Require().Len(entries, 1)
	s.Equal("Expense: Groceries (50% of 100.00)", entries[0].Description)
}

func (s *ExpenseServiceTestSuite) TestCreate_Rejected() {
	cases := []dto.CreateExpenseRequest{
		{Name: "zero", Amount: d("0")},
		{Name: "negative", Amount: d("-1")},
		{Name: "sub cent", Amount: d("0.004")},
		{Name: "", Amount: d("5")},
		{Name: "empty split", Amount: d("5"), SplitPercentages: []domainexpense.SplitPercentage{}},
		{Name: "bad split", Amount: d("5"), SplitPercentages: []domainexpense.SplitPercentage{
			{Name: "A", Percentage: 60}, {Name: "B", Percentage: 30},
		}},
		{Name: "bad frequency", Amount: d("5"), Frequency: "hourly"},
	}
	for _, in := range cases {
		_, err := s.svc.Create(s.ctx, s.userID, in)
		s.ErrorIs(err, domain.ErrBadRequest, in.Name)
	}
	s.True(s.balance().Equal(d("500.00")))
	s.Empty(testdb.Entries(s.T(), s.uow, s.userID))
}

func (s *ExpenseServiceTestSuite) TestCreate_MissingBankRollsBack() {
	stranger := uuid.New()
	_, err := s.svc.Create(s.ctx, stranger, dto.CreateExpenseRequest{Name: "x", Amount: d("5")})
	s.ErrorIs(err, domain.ErrNotFound)

	list, err := s.svc.FindAll(s.ctx, stranger, dto.ExpenseQuery{IncludeArchived: true})
	s.Require().NoError(err)
	s.Zero(list.Total)
}

func (s *ExpenseServiceTestSuite) TestArchive_ReversesOnce() {
	e := s.create("80.00")

	archived, err := s.svc.Delete(s.ctx, s.userID, e.ID)
	s.Require().NoError(err)
	s.True(archived.IsArchived)
	s.False(archived.IsActive)
	s.NotNil(archived.ArchivedAt)
	s.True(s.balance().Equal(d("500.00")))

	again, err := s.svc.Delete(s.ctx, s.userID, e.ID)
	s.Require().NoError(err)
	s.True(again.IsArchived)
	s.True(s.balance().Equal(d("500.00")))

	entries := testdb.Entries(s.T(), s.uow, s.userID)
	s.Require().Len(entries, 2)
	s.Equal("Expense archived: Groceries", entries[1].Description)
	s.assertConserved()
}

func (s *ExpenseServiceTestSuite) TestHardDelete_CreditsShare() {
	e := s.create("80.00")

	s.Require().NoError(s.svc.HardDelete(s.ctx, s.userID, e.ID))
	s.True(s.balance().Equal(d("500.00")))

	entries := testdb.Entries(s.T(), s.uow, s.userID)
	s.Require().Len(entries, 2)
	s.Nil(entries[1].ExpenseID)
	s.Equal("Permanent deletion of expense: Groceries", entries[1].Description)

	_, err := s.svc.FindOne(s.ctx, s.userID, e.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	s.assertConserved()
}

func (s *ExpenseServiceTestSuite) TestHardDelete_AfterArchiveDoesNotCreditAgain() {
	e := s.create("80.00")
	_, err := s.svc.Delete(s.ctx, s.userID, e.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.HardDelete(s.ctx, s.userID, e.ID))
	s.True(s.balance().Equal(d("500.00")))
	s.Len(testdb.Entries(s.T(), s.uow, s.userID), 2)
	s.assertConserved()
}

func (s *ExpenseServiceTestSuite) TestUpdate_PostsShareDifference() {
	e := s.create("100.00")

	amount := d("60.00")
	_, err := s.svc.Update(s.ctx, s.userID, e.ID, dto.UpdateExpenseRequest{Amount: &amount})
	s.Require().NoError(err)
	s.True(s.balance().Equal(d("440.00")))

	split := []domainexpense.SplitPercentage{{Name: "A", Percentage: 50}, {Name: "B", Percentage: 50}}
	updated, err := s.svc.Update(s.ctx, s.userID, e.ID, dto.UpdateExpenseRequest{SplitPercentages: &split})
	s.Require().NoError(err)
	s.Len(updated.SplitPercentages, 2)
	s.True(s.balance().Equal(d("470.00")))

	entries := testdb.Entries(s.T(), s.uow, s.userID)
	s.Require().Len(entries, 3)
	s.Equal("Expense adjustment: Groceries (reduction)", entries[1].Description)

	bigger := d("200.00")
	_, err = s.svc.Update(s.ctx, s.userID, e.ID, dto.UpdateExpenseRequest{Amount: &bigger})
	s.Require().NoError(err)
	s.True(s.balance().Equal(d("400.00")))
	entries = testdb.Entries(s.T(), s.uow, s.userID)
	s.Equal("Expense adjustment: Groceries (increase)", entries[3].Description)
	s.assertConserved()
}

func (s *ExpenseServiceTestSuite) TestUpdate_NoShareChangeWritesNothing() {
	e := s.create("100.00")
	name := "Food"
	updated, err := s.svc.Update(s.ctx, s.userID, e.ID, dto.UpdateExpenseRequest{Name: &name})
	s.Require().NoError(err)
	s.Equal("Food", updated.Name)
	s.Len(testdb.Entries(s.T(), s.uow, s.userID), 1)
}

func (s *ExpenseServiceTestSuite) TestUpdate_ArchivedDoesNotMoveBalance() {
	e := s.create("100.00")
	_, err := s.svc.Delete(s.ctx, s.userID, e.ID)
	s.Require().NoError(err)

	amount := d("10.00")
	_, err = s.svc.Update(s.ctx, s.userID, e.ID, dto.UpdateExpenseRequest{Amount: &amount})
	s.Require().NoError(err)
	s.True(s.balance().Equal(d("500.00")))
}

func (s *ExpenseServiceTestSuite) TestUpdate_InvalidSplitLeavesExpense() {
	e := s.create("100.00")
	split := []domainexpense.SplitPercentage{{Name: "A", Percentage: 0}, {Name: "B", Percentage: 100}}
	_, err := s.svc.Update(s.ctx, s.userID, e.ID, dto.UpdateExpenseRequest{SplitPercentages: &split})
	s.ErrorIs(err, domain.ErrBadRequest)

	got, err := s.svc.FindOne(s.ctx, s.userID, e.ID)
	s.Require().NoError(err)
	s.Empty(got.SplitPercentages)
}

func (s *ExpenseServiceTestSuite) TestUpdate_EmptySplitRejected() {
	e := s.create("100.00",
		domainexpense.SplitPercentage{Name: "A", Percentage: 50},
		domainexpense.SplitPercentage{Name: "B", Percentage: 50},
	)
	empty := []domainexpense.SplitPercentage{}
	_, err := s.svc.Update(s.ctx, s.userID, e.ID, dto.UpdateExpenseRequest{SplitPercentages: &empty})
	s.ErrorIs(err, domain.ErrBadRequest)

	got, err := s.svc.FindOne(s.ctx, s.userID, e.ID)
	s.Require().NoError(err)
	s.Len(got.SplitPercentages, 2)
	s.True(s.balance().Equal(d("450.00")))
	s.Len(testdb.Entries(s.T(), s.uow, s.userID), 1)
}

func (s *ExpenseServiceTestSuite) TestOwnershipIsolation() {
	e := s.create("30.00")
	other := testdb.SeedUser(s.T(), s.uow, "0.00")

	_, err := s.svc.FindOne(s.ctx, other, e.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	amount := d("1.00")
	_, err = s.svc.Update(s.ctx, other, e.ID, dto.UpdateExpenseRequest{Amount: &amount})
	s.ErrorIs(err, domain.ErrNotFound)
	_, err = s.svc.Delete(s.ctx, other, e.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	s.ErrorIs(s.svc.HardDelete(s.ctx, other, e.ID), domain.ErrNotFound)

	s.True(s.balance().Equal(d("470.00")))
	s.True(testdb.Balance(s.T(), s.uow, other).IsZero())
}

func (s *ExpenseServiceTestSuite) TestFindAll_FiltersAndPaginates() {
	for i := 0; i < 5; i++ {
		s.create("1.00")
	}
	rent, err := s.svc.Create(s.ctx, s.userID, dto.CreateExpenseRequest{
		Name: "Rent", Category: "housing", Amount: d("300"), Frequency: "monthly", IsRecurring: true,
	})
	s.Require().NoError(err)
	_, err = s.svc.Delete(s.ctx, s.userID, rent.ID)
	s.Require().NoError(err)

	page, err := s.svc.FindAll(s.ctx, s.userID, dto.ExpenseQuery{Limit: 2, Page: 2})
	s.Require().NoError(err)
	s.EqualValues(5, page.Total)
	s.Len(page.Items, 2)
	s.Equal(2, page.Page)

	all, err := s.svc.FindAll(s.ctx, s.userID, dto.ExpenseQuery{IncludeArchived: true, Limit: 500})
	s.Require().NoError(err)
	s.EqualValues(6, all.Total)
	s.Equal(100, all.Limit)

	housing, err := s.svc.FindAll(s.ctx, s.userID, dto.ExpenseQuery{Category: "housing", IncludeArchived: true})
	s.Require().NoError(err)
	s.Require().Len(housing.Items, 1)
	s.Equal("Rent", housing.Items[0].Name)
	s.Equal(20, housing.Limit)
}

func (s *ExpenseServiceTestSuite) TestGetStatistics() {
	_, err := s.svc.Create(s.ctx, s.userID, dto.CreateExpenseRequest{
		Name: "Rent", Category: "housing", Amount: d("900"), Frequency: "monthly", IsRecurring: true,
		SplitPercentages: []domainexpense.SplitPercentage{{Name: "A", Percentage: 50}, {Name: "B", Percentage: 50}},
	})
	s.Require().NoError(err)
	_, err = s.svc.Create(s.ctx, s.userID, dto.CreateExpenseRequest{
		Name: "Insurance", Amount: d("120"), Frequency: "yearly", IsRecurring: true,
	})
	s.Require().NoError(err)
	old := s.create("10.00")
	_, err = s.svc.Delete(s.ctx, s.userID, old.ID)
	s.Require().NoError(err)

	stats, err := s.svc.GetStatistics(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(2, stats.ActiveCount)
	s.Equal(1, stats.ArchivedCount)
	s.True(stats.TotalAmount.Equal(d("1020")))
	s.True(stats.TotalUserShare.Equal(d("570")))
	s.True(stats.MonthlyEstimate.Equal(d("460")), stats.MonthlyEstimate.String())
	s.Require().Len(stats.ByCategory, 2)
	s.Equal("housing", stats.ByCategory[0].Category)
	s.Equal("uncategorized", stats.ByCategory[1].Category)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

func TestNoSplitUsesFullAmount(t *testing.T) {
	uow, _ := testdb.NewUoW(t)
	userID := testdb.SeedUser(t, uow, "0.00")
	svc := expense.New(uow, nil, slog.Default())

	_, err := svc.Create(context.Background(), userID, dto.CreateExpenseRequest{Name: "Coffee", Amount: d("3.456")})
	require.NoError(t, err)
	assert.True(t, testdb.Balance(t, uow, userID).Equal(d("-3.46")))
}
