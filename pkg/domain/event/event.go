// Package event holds shared events split between participants.
package event

import (
	"fmt"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle of an event.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a status name. An empty string yields planned.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case "":
		return StatusPlanned, nil
	case StatusPlanned, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown event status %q", domain.ErrBadRequest, s)
}

// ValidatePercentage checks a participant share.
func ValidatePercentage(p decimal.Decimal) error {
	if !p.IsPositive() || p.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: percentage must be in (0, 100]", domain.ErrBadRequest)
	}
	return nil
}
