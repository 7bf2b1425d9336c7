package ledger

import (
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/shopspring/decimal"
)

// ExpenseReversal is the credit owed back when e is archived. An expense
// that was already reversed owes nothing.
func ExpenseReversal(e *dto.ExpenseRead) (decimal.Decimal, bool) {
	if e.Reversed || e.IsArchived {
		return decimal.Zero, false
	}
	return UserShare(e.Amount, e.SplitPercentages), true
}

// ExpenseErasure is the credit owed when e is permanently deleted. It is
// the same share as an archive, and nothing when an archive already
// returned it.
func ExpenseErasure(e *dto.ExpenseRead) (decimal.Decimal, bool) {
	return ExpenseReversal(e)
}

// ExpenseAdjustment is the signed balance change needed when an expense
// moves from before to after. It is oldShare - newShare, so a smaller share
// credits the bank. Reversed expenses no longer affect the balance.
func ExpenseAdjustment(before, after *dto.ExpenseRead) (decimal.Decimal, bool) {
	if before.Reversed || before.IsArchived {
		return decimal.Zero, false
	}
	diff := UserShare(before.Amount, before.SplitPercentages).
		Sub(UserShare(after.Amount, after.SplitPercentages))
	if diff.IsZero() {
		return decimal.Zero, false
	}
	return diff, true
}
