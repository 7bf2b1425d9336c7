package ledger

import (
	"context"

	"github.com/amirasaad/finance/pkg/dto"
	"github.com/google/uuid"
)

// Repository is the append-only store of ledger entries. It deliberately
// offers no way to change or remove a single entry.
type Repository interface {
	// Create appends one entry.
	Create(ctx context.Context, create *dto.LedgerEntryCreate) error

	// ListByUser returns a user's entries in chronological order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.LedgerEntryRead, error)

	// ListByExpense returns the entries linked to one expense.
	ListByExpense(ctx context.Context, expenseID uuid.UUID) ([]*dto.LedgerEntryRead, error)

	// DeleteByUserID erases a user's whole history. Only account erasure
	// uses it.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
