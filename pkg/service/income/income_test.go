package income_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/finance/infra/eventbus"
	infrarepo "github.com/amirasaad/finance/infra/repository"
	"github.com/amirasaad/finance/internal/testdb"
	"github.com/amirasaad/finance/pkg/domain"
	domainledger "github.com/amirasaad/finance/pkg/domain/ledger"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/ledger"
	"github.com/amirasaad/finance/pkg/service/income"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type IncomeServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	uow    *infrarepo.UoW
	bus    *infraeventbus.MemoryEventBus
	svc    *income.Service
	userID uuid.UUID
}

func (s *IncomeServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow, _ = testdb.NewUoW(s.T())
	s.bus = infraeventbus.NewWithMemory(slog.Default())
	s.svc = income.New(s.uow, s.bus, slog.Default())
	s.userID = testdb.SeedUser(s.T(), s.uow, "100.00")
}

func (s *IncomeServiceTestSuite) TearDownTest() {
	ledger.Now = func() time.Time { return time.Now().UTC() }
}

func (s *IncomeServiceTestSuite) create(frequency string) *dto.IncomeRead {
	i, err := s.svc.Create(s.ctx, s.userID, dto.CreateIncomeRequest{
		Name:            "Salary",
		Type:            "salary",
		Amount:          decimal.RequireFromString("2500.00"),
		Frequency:       frequency,
		NextPaymentDate: time.Now().UTC().Add(24 * time.Hour),
	})
	s.Require().NoError(err)
	return i
}

func (s *IncomeServiceTestSuite) TestCreate_HasNoBalanceEffect() {
	i := s.create("")

	s.Equal(domain.FrequencyMonthly, i.Frequency)
	s.True(i.IsRecurring)
	s.True(i.IsActive)
	s.True(testdb.Balance(s.T(), s.uow, s.userID).Equal(decimal.NewFromInt(100)))
	s.Empty(testdb.Entries(s.T(), s.uow, s.userID))
}

func (s *IncomeServiceTestSuite) TestCreate_Rejected() {
	tomorrow := time.Now().UTC().Add(24 * time.Hour)
	cases := map[string]dto.CreateIncomeRequest{
		"past date":   {Name: "a", Type: "salary", Amount: decimal.NewFromInt(1), NextPaymentDate: time.Now().Add(-time.Hour)},
		"zero amount": {Name: "a", Type: "salary", Amount: decimal.Zero, NextPaymentDate: tomorrow},
		"bad type":    {Name: "a", Type: "lottery", Amount: decimal.NewFromInt(1), NextPaymentDate: tomorrow},
		"bad freq":    {Name: "a", Type: "bonus", Amount: decimal.NewFromInt(1), Frequency: "hourly", NextPaymentDate: tomorrow},
	}
	for name, in := range cases {
		_, err := s.svc.Create(s.ctx, s.userID, in)
		s.ErrorIs(err, domain.ErrBadRequest, name)
	}
}

func (s *IncomeServiceTestSuite) TestCreate_RequiresBank() {
	_, err := s.svc.Create(s.ctx, uuid.New(), dto.CreateIncomeRequest{
		Name: "a", Type: "salary", Amount: decimal.NewFromInt(1),
		NextPaymentDate: time.Now().Add(time.Hour),
	})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *IncomeServiceTestSuite) TestOwnership() {
	i := s.create("monthly")
	other := testdb.SeedUser(s.T(), s.uow, "0.00")

	_, err := s.svc.FindOne(s.ctx, other, i.ID)
	s.ErrorIs(err, domain.ErrForbidden)
	_, err = s.svc.FindOne(s.ctx, s.userID, uuid.New())
	s.ErrorIs(err, domain.ErrNotFound)
	_, err = s.svc.CreditNow(s.ctx, other, i.ID)
	s.ErrorIs(err, domain.ErrForbidden)
	s.ErrorIs(s.svc.HardDelete(s.ctx, other, i.ID), domain.ErrForbidden)

	s.True(testdb.Balance(s.T(), s.uow, other).IsZero())
}

func (s *IncomeServiceTestSuite) TestArchiveAndHardDelete_NoBalanceEffect() {
	i := s.create("monthly")

	archived, err := s.svc.Delete(s.ctx, s.userID, i.ID)
	s.Require().NoError(err)
	s.True(archived.IsArchived)
	s.False(archived.IsActive)

	active, err := s.svc.FindAll(s.ctx, s.userID, dto.IncomeQuery{})
	s.Require().NoError(err)
	s.Empty(active)
	all, err := s.svc.FindAll(s.ctx, s.userID, dto.IncomeQuery{IncludeArchived: true})
	s.Require().NoError(err)
	s.Len(all, 1)

	s.Require().NoError(s.svc.HardDelete(s.ctx, s.userID, i.ID))
	s.True(testdb.Balance(s.T(), s.uow, s.userID).Equal(decimal.NewFromInt(100)))
	s.Empty(testdb.Entries(s.T(), s.uow, s.userID))
}

func (s *IncomeServiceTestSuite) TestUpdate() {
	i := s.create("monthly")

	inactive := false
	amount := decimal.RequireFromString("2600.499")
	updated, err := s.svc.Update(s.ctx, s.userID, i.ID, dto.UpdateIncomeRequest{
		IsActive: &inactive,
		Amount:   &amount,
	})
	s.Require().NoError(err)
	s.False(updated.IsActive)
	s.True(updated.Amount.Equal(decimal.RequireFromString("2600.50")))

	past := time.Now().Add(-48 * time.Hour)
	_, err = s.svc.Update(s.ctx, s.userID, i.ID, dto.UpdateIncomeRequest{NextPaymentDate: &past})
	s.ErrorIs(err, domain.ErrBadRequest)
}

func (s *IncomeServiceTestSuite) TestCreditNow_Recurring() {
	i := s.create("monthly")

	res, err := s.svc.CreditNow(s.ctx, s.userID, i.ID)
	s.Require().NoError(err)
	s.True(res.Bank.Balance.Equal(decimal.RequireFromString("2600.00")))
	s.Equal(domainledger.EntryIncome, res.Entry.Type)
	s.Equal("Income: Salary", res.Entry.Description)
	s.Require().NotNil(res.Entry.IncomeID)
	s.Equal(i.ID, *res.Entry.IncomeID)
	s.True(res.Income.IsActive)
	s.WithinDuration(i.NextPaymentDate.AddDate(0, 1, 0), res.Income.NextPaymentDate, time.Second)
	s.Len(s.bus.Published(), 1)
}

func (s *IncomeServiceTestSuite) TestCreditNow_OnceDeactivates() {
	i := s.create("once")
	s.False(i.IsRecurring)

	res, err := s.svc.CreditNow(s.ctx, s.userID, i.ID)
	s.Require().NoError(err)
	s.False(res.Income.IsActive)

	_, err = s.svc.CreditNow(s.ctx, s.userID, i.ID)
	s.ErrorIs(err, domain.ErrBadRequest)
	s.Len(testdb.Entries(s.T(), s.uow, s.userID), 1)
}

func (s *IncomeServiceTestSuite) TestCreditNow_ArchivedRejected() {
	i := s.create("monthly")
	_, err := s.svc.Delete(s.ctx, s.userID, i.ID)
	s.Require().NoError(err)

	_, err = s.svc.CreditNow(s.ctx, s.userID, i.ID)
	s.ErrorIs(err, domain.ErrBadRequest)
	s.True(testdb.Balance(s.T(), s.uow, s.userID).Equal(decimal.NewFromInt(100)))
}

func (s *IncomeServiceTestSuite) TestCreate_ExplicitNonRecurringMonthly() {
	recurring := false
	i, err := s.svc.Create(s.ctx, s.userID, dto.CreateIncomeRequest{
		Name:            "Freelance",
		Type:            "other",
		Amount:          decimal.RequireFromString("300.00"),
		Frequency:       "monthly",
		IsRecurring:     &recurring,
		NextPaymentDate: time.Now().UTC().Add(24 * time.Hour),
	})
	s.Require().NoError(err)
	s.False(i.IsRecurring)
	s.Equal(domain.FrequencyMonthly, i.Frequency)

	stored, err := s.svc.FindOne(s.ctx, s.userID, i.ID)
	s.Require().NoError(err)
	s.False(stored.IsRecurring)

	res, err := s.svc.CreditNow(s.ctx, s.userID, i.ID)
	s.Require().NoError(err)
	s.False(res.Income.IsRecurring)
	s.True(res.Income.IsActive)
	s.WithinDuration(i.NextPaymentDate, res.Income.NextPaymentDate, time.Second)
}

func (s *IncomeServiceTestSuite) TestCreate_SubCentAmountRejected() {
	_, err := s.svc.Create(s.ctx, s.userID, dto.CreateIncomeRequest{
		Name:            "Dust",
		Type:            "other",
		Amount:          decimal.RequireFromString("0.004"),
		NextPaymentDate: time.Now().UTC().Add(24 * time.Hour),
	})
	s.ErrorIs(err, domain.ErrBadRequest)
}

func (s *IncomeServiceTestSuite) TestUpdate_ArchivedCannotBeReactivated() {
	i := s.create("monthly")
	_, err := s.svc.Delete(s.ctx, s.userID, i.ID)
	s.Require().NoError(err)

	active := true
	_, err = s.svc.Update(s.ctx, s.userID, i.ID, dto.UpdateIncomeRequest{IsActive: &active})
	s.ErrorIs(err, domain.ErrBadRequest)

	all, err := s.svc.FindAll(s.ctx, s.userID, dto.IncomeQuery{IncludeArchived: true})
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.True(all[0].IsArchived)
	s.False(all[0].IsActive)
}

func (s *IncomeServiceTestSuite) TestFindDue() {
	due := s.create("monthly")
	s.create("weekly")

	ledger.Now = func() time.Time { return time.Now().UTC().Add(36 * time.Hour) }
	// Only the first income is moved out of the window.
	_, err := s.svc.CreditNow(s.ctx, s.userID, due.ID)
	s.Require().NoError(err)

	list, err := s.svc.FindDue(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(domain.FrequencyWeekly, list[0].Frequency)
}

func TestIncomeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IncomeServiceTestSuite))
}
