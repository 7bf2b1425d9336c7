// Package budget holds shared-funding pots. Budgets do not move the bank
// balance yet.
package budget

import (
	"fmt"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/shopspring/decimal"
)

// ValidateTarget rejects targets that are zero or negative.
func ValidateTarget(target decimal.Decimal) error {
	if !target.IsPositive() {
		return fmt.Errorf("%w: target amount must be greater than 0", domain.ErrBadRequest)
	}
	return nil
}
