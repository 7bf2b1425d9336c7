// Package income defines income records and their validation rules.
package income

import (
	"fmt"
	"time"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/shopspring/decimal"
)

// Type is the source of an income.
type Type string

const (
	TypeSalary     Type = "salary"
	TypeSocialAid  Type = "social_aid"
	TypeBonus      Type = "bonus"
	TypeInvestment Type = "investment"
	TypeOther      Type = "other"
)

// ParseType validates an income type name.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeSalary, TypeSocialAid, TypeBonus, TypeInvestment, TypeOther:
		return t, nil
	}
	return "", fmt.Errorf(
		"%w: type must be one of salary, social_aid, bonus, investment, other",
		domain.ErrBadRequest,
	)
}

// ValidateAmount rejects incomes that round to zero or below at cent precision.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.Round(2).IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0", domain.ErrBadRequest)
	}
	return nil
}

// ValidateNextPaymentDate rejects dates in the past.
func ValidateNextPaymentDate(date, now time.Time) error {
	if date.Before(now) {
		return fmt.Errorf("%w: next payment date must be in the future", domain.ErrBadRequest)
	}
	return nil
}

// CreditedDescription is the ledger text written when an income is credited.
func CreditedDescription(name string) string {
	return "Income: " + name
}
