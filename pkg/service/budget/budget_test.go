package budget_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/amirasaad/finance/internal/testdb"
	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/service/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetLifecycle(t *testing.T) {
	uow, _ := testdb.NewUoW(t)
	svc := budget.New(uow, slog.Default())
	ctx := context.Background()
	owner := testdb.SeedUser(t, uow, "10.00")
	other := testdb.SeedUser(t, uow, "0")

	b, err := svc.Create(ctx, owner, dto.CreateBudgetRequest{Name: "Holiday", TargetAmount: decimal.NewFromInt(1500)})
	require.NoError(t, err)
	assert.Equal(t, "EUR", b.Currency)
	assert.True(t, b.IsActive)
	assert.True(t, b.CurrentAmount.IsZero())

	name := "Summer holiday"
	b, err = svc.Update(ctx, owner, b.ID, dto.UpdateBudgetRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, b.Name)

	b, err = svc.AddParticipant(ctx, owner, b.ID, dto.AddBudgetParticipantRequest{Name: "Sam"})
	require.NoError(t, err)
	require.Len(t, b.Participants, 1)
	participantID := b.Participants[0].ID

	_, err = svc.FindOne(ctx, other, b.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.RemoveParticipant(ctx, other, b.ID, participantID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	b, err = svc.RemoveParticipant(ctx, owner, b.ID, participantID)
	require.NoError(t, err)
	assert.Empty(t, b.Participants)
	_, err = svc.RemoveParticipant(ctx, owner, b.ID, participantID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := svc.FindAll(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	b, err = svc.Delete(ctx, owner, b.ID)
	require.NoError(t, err)
	assert.True(t, b.IsArchived)
	list, err = svc.FindAll(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.True(t, testdb.Balance(t, uow, owner).Equal(decimal.NewFromInt(10)))
	assert.Empty(t, testdb.Entries(t, uow, owner))
}

func TestBudgetValidation(t *testing.T) {
	uow, _ := testdb.NewUoW(t)
	svc := budget.New(uow, slog.Default())
	ctx := context.Background()
	owner := testdb.SeedUser(t, uow, "0")

	_, err := svc.Create(ctx, owner, dto.CreateBudgetRequest{Name: "x", TargetAmount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	_, err = svc.Create(ctx, owner, dto.CreateBudgetRequest{Name: "x", TargetAmount: decimal.NewFromInt(1), Currency: "eur"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	_, err = svc.FindOne(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
