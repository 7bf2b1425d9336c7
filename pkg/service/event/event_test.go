package event_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/finance/internal/testdb"
	"github.com/amirasaad/finance/pkg/domain"
	domainevent "github.com/amirasaad/finance/pkg/domain/event"
	"github.com/amirasaad/finance/pkg/dto"
	budgetsvc "github.com/amirasaad/finance/pkg/service/budget"
	"github.com/amirasaad/finance/pkg/service/event"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLifecycle(t *testing.T) {
	uow, _ := testdb.NewUoW(t)
	svc := event.New(uow, slog.Default())
	ctx := context.Background()
	owner := testdb.SeedUser(t, uow, "0")
	other := testdb.SeedUser(t, uow, "0")

	e, err := svc.Create(ctx, owner, dto.CreateEventRequest{
		Name:        "Dinner",
		TotalAmount: decimal.NewFromInt(120),
		EventDate:   time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, domainevent.StatusPlanned, e.Status)

	e, err = svc.AddParticipant(ctx, owner, e.ID, dto.AddEventParticipantRequest{Name: "A", Percentage: decimal.NewFromInt(60)})
	require.NoError(t, err)
	_, err = svc.AddParticipant(ctx, owner, e.ID, dto.AddEventParticipantRequest{Name: "B", Percentage: decimal.NewFromInt(50)})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	e, err = svc.AddParticipant(ctx, owner, e.ID, dto.AddEventParticipantRequest{Name: "B", Percentage: decimal.NewFromInt(40)})
	require.NoError(t, err)
	require.Len(t, e.Participants, 2)

	_, err = svc.FindOne(ctx, other, e.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	e, err = svc.RemoveParticipant(ctx, owner, e.ID, e.Participants[0].ID)
	require.NoError(t, err)
	assert.Len(t, e.Participants, 1)

	status := "completed"
	e, err = svc.Update(ctx, owner, e.ID, dto.UpdateEventRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domainevent.StatusCompleted, e.Status)

	e, err = svc.Delete(ctx, owner, e.ID)
	require.NoError(t, err)
	assert.True(t, e.IsArchived)
	list, err := svc.FindAll(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_BudgetMustBeOwned(t *testing.T) {
	uow, _ := testdb.NewUoW(t)
	ctx := context.Background()
	owner := testdb.SeedUser(t, uow, "0")
	other := testdb.SeedUser(t, uow, "0")
	b, err := budgetsvc.New(uow, slog.Default()).Create(ctx, owner, dto.CreateBudgetRequest{
		Name: "Trip", TargetAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	svc := event.New(uow, slog.Default())
	in := dto.CreateEventRequest{Name: "Train", BudgetID: &b.ID, EventDate: time.Now().Add(time.Hour)}
	_, err = svc.Create(ctx, other, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	e, err := svc.Create(ctx, owner, in)
	require.NoError(t, err)
	require.NotNil(t, e.BudgetID)
	assert.Equal(t, b.ID, *e.BudgetID)

	bad := "later"
	_, err = svc.Update(ctx, owner, e.ID, dto.UpdateEventRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}
