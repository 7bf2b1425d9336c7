// Package expense defines expense records and the shape of a shared split.
package expense

import (
	"fmt"
	"strings"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/shopspring/decimal"
)

// SplitPercentage is one named participant of a shared expense.
type SplitPercentage struct {
	Name       string  `json:"name" validate:"required,max=255"`
	Percentage float64 `json:"percentage"`
}

// ValidateAmount rejects expenses that round to zero or below at cent precision.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.Round(2).IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0", domain.ErrBadRequest)
	}
	return nil
}

// CreatedDescription is the ledger text written when an expense is debited.
func CreatedDescription(name string, amount, percentage decimal.Decimal, split bool) string {
	if !split {
		return "Expense: " + name
	}
	return fmt.Sprintf("Expense: %s (%s%% of %s)", name, percentage.String(), amount.StringFixed(2))
}

// AdjustedDescription is the ledger text written when an update changes the
// user's share. A positive diff means the share went down.
func AdjustedDescription(name string, diff decimal.Decimal) string {
	kind := "increase"
	if diff.IsPositive() {
		kind = "reduction"
	}
	return fmt.Sprintf("Expense adjustment: %s (%s)", name, kind)
}

// ArchivedDescription is the ledger text for the archive reversal.
func ArchivedDescription(name string) string {
	return "Expense archived: " + name
}

// ErasedDescription is the ledger text for the credit written on permanent
// deletion.
func ErasedDescription(name string) string {
	return "Permanent deletion of expense: " + name
}

// NormalizeCategory maps an empty category to the bucket used in statistics.
func NormalizeCategory(category string) string {
	if c := strings.TrimSpace(category); c != "" {
		return c
	}
	return "uncategorized"
}
