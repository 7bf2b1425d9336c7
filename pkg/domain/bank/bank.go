// Package bank holds the rules of the per-user virtual balance.
package bank

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is assigned to every bank opened at signup.
const DefaultCurrency = "EUR"

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateCurrency checks an ISO 4217 style code (three upper-case letters).
func ValidateCurrency(code string) error {
	if !currencyPattern.MatchString(code) {
		return fmt.Errorf("%w: currency must be a 3-letter ISO 4217 code", domain.ErrBadRequest)
	}
	return nil
}

// ValidateAmount rejects adjustments that round to zero or below at cent precision.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.Round(2).IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0", domain.ErrBadRequest)
	}
	return nil
}

// DepositDescription is used when a manual deposit carries no description.
func DepositDescription(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("Manual deposit of %s %s", amount.StringFixed(2), strings.ToUpper(currency))
}

// WithdrawalDescription is used when a manual withdrawal carries no description.
func WithdrawalDescription(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("Manual withdrawal of %s %s", amount.StringFixed(2), strings.ToUpper(currency))
}
