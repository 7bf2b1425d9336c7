package ledger

import (
	"fmt"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/expense"
	"github.com/shopspring/decimal"
)

var (
	hundred        = decimal.NewFromInt(100)
	splitTolerance = decimal.RequireFromString("0.01")
)

// UserShare returns the part of amount that is debited from the owner's
// bank. Without participants the owner pays everything. With participants
// the amount is divided equally by head count; the individual percentages
// are validated but do not weight the share.
func UserShare(amount decimal.Decimal, participants []expense.SplitPercentage) decimal.Decimal {
	if len(participants) == 0 {
		return amount.Round(2)
	}
	return amount.Div(decimal.NewFromInt(int64(len(participants)))).Round(2)
}

// UserPercentage is the owner's share of a split expense in percent, as
// shown in ledger descriptions.
func UserPercentage(participants []expense.SplitPercentage) decimal.Decimal {
	if len(participants) == 0 {
		return hundred
	}
	return hundred.Div(decimal.NewFromInt(int64(len(participants)))).Round(2)
}

// ValidateSplit checks that a split names at least one participant, that
// every percentage is positive and that they sum to 100 within 0.01.
func ValidateSplit(participants []expense.SplitPercentage) error {
	if len(participants) == 0 {
		return fmt.Errorf("%w: split must contain at least one participant", domain.ErrBadRequest)
	}
	total := decimal.Zero
	for _, p := range participants {
		total = total.Add(decimal.NewFromFloat(p.Percentage))
	}
	if total.Sub(hundred).Abs().GreaterThan(splitTolerance) {
		return fmt.Errorf(
			"%w: split percentages must sum to 100 (got %s)",
			domain.ErrBadRequest, total.StringFixed(2),
		)
	}
	for _, p := range participants {
		if p.Percentage <= 0 {
			return fmt.Errorf("%w: percentage of %s must be greater than 0", domain.ErrBadRequest, p.Name)
		}
	}
	return nil
}
