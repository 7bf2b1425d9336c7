// Package ledger keeps a user's bank balance and the append-only ledger in
// step. Every balance change goes through Post, which locks the bank row,
// writes the new balance and appends exactly one entry carrying that
// balance, all on the caller's transaction.
package ledger

import (
	"context"

	"github.com/amirasaad/finance/pkg/domain/events"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/repository"
)

// Result is what a posting produced.
type Result struct {
	Entry *dto.LedgerEntryRead
	Bank  *dto.BankRead
}

// Post applies p to the balance and records it. uow must be the
// transactional unit handed to UnitOfWork.Do.
func Post(ctx context.Context, uow repository.UnitOfWork, p Posting) (*Result, error) {
	banks, err := uow.BankRepository()
	if err != nil {
		return nil, err
	}
	entries, err := uow.LedgerRepository()
	if err != nil {
		return nil, err
	}
	b, err := ApplyDelta(ctx, banks, p.UserID, p.Amount)
	if err != nil {
		return nil, err
	}
	entry, err := Record(ctx, entries, p, b.Balance)
	if err != nil {
		return nil, err
	}
	return &Result{Entry: entry, Bank: b}, nil
}

// Event describes the posting for subscribers once it has been committed.
func (r *Result) Event() events.Event {
	return events.LedgerEntryRecorded{
		EntryID:      r.Entry.ID,
		UserID:       r.Entry.UserID,
		EntryType:    r.Entry.Type,
		Amount:       r.Entry.Amount,
		BalanceAfter: r.Entry.BalanceAfter,
		Description:  r.Entry.Description,
		OccurredAt:   r.Entry.TransactionDate,
	}
}
