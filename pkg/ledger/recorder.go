package ledger

import (
	"context"
	"fmt"

	"github.com/amirasaad/finance/pkg/domain"
	domainledger "github.com/amirasaad/finance/pkg/domain/ledger"
	"github.com/amirasaad/finance/pkg/dto"
	ledgerrepo "github.com/amirasaad/finance/pkg/repository/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Posting describes one balance-affecting event before it is applied.
type Posting struct {
	UserID      uuid.UUID
	Type        domainledger.EntryType
	Amount      decimal.Decimal
	Description string
	IncomeID    *uuid.UUID
	ExpenseID   *uuid.UUID
	EventID     *uuid.UUID
	BudgetID    *uuid.UUID
}

// Record appends the ledger entry for a posting that has already been
// applied to the balance. balanceAfter is the value ApplyDelta returned.
func Record(
	ctx context.Context,
	entries ledgerrepo.Repository,
	p Posting,
	balanceAfter decimal.Decimal,
) (*dto.LedgerEntryRead, error) {
	if !p.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown ledger entry type %q", domain.ErrBadRequest, p.Type)
	}
	if p.Description == "" {
		p.Description = string(p.Type)
	}
	now := Now()
	create := &dto.LedgerEntryCreate{
		ID:              uuid.New(),
		UserID:          p.UserID,
		Type:            p.Type,
		Amount:          p.Amount.Round(2),
		BalanceAfter:    balanceAfter,
		Description:     p.Description,
		IncomeID:        p.IncomeID,
		ExpenseID:       p.ExpenseID,
		EventID:         p.EventID,
		BudgetID:        p.BudgetID,
		TransactionDate: now,
	}
	if err := entries.Create(ctx, create); err != nil {
		return nil, err
	}
	return &dto.LedgerEntryRead{
		ID:              create.ID,
		UserID:          create.UserID,
		Type:            create.Type,
		Amount:          create.Amount,
		BalanceAfter:    create.BalanceAfter,
		Description:     create.Description,
		IncomeID:        create.IncomeID,
		ExpenseID:       create.ExpenseID,
		EventID:         create.EventID,
		BudgetID:        create.BudgetID,
		TransactionDate: now,
		CreatedAt:       now,
	}, nil
}
