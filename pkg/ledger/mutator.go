package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/dto"
	bankrepo "github.com/amirasaad/finance/pkg/repository/bank"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Now is the clock used for balance and ledger timestamps.
var Now = func() time.Time { return time.Now().UTC() }

// ApplyDelta adds a signed delta to a user's balance and returns the bank as
// written. The bank row is locked for the rest of the transaction, so it
// must be called inside UnitOfWork.Do together with the matching Record.
func ApplyDelta(
	ctx context.Context,
	banks bankrepo.Repository,
	userID uuid.UUID,
	delta decimal.Decimal,
) (*dto.BankRead, error) {
	b, err := banks.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: no bank for user %s", domain.ErrNotFound, userID)
	}
	now := Now()
	newBalance := b.Balance.Add(delta).Round(2)
	if err := banks.UpdateBalance(ctx, b.ID, newBalance, now); err != nil {
		return nil, err
	}
	b.Balance = newBalance
	b.LastUpdatedAt = now
	return b, nil
}
