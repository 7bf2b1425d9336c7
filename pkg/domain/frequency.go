package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is how often a recurring income or expense repeats.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
	FrequencyOnce      Frequency = "once"
)

// ParseFrequency validates a frequency name. An empty string yields def.
func ParseFrequency(s string, def Frequency) (Frequency, error) {
	if s == "" {
		return def, nil
	}
	switch f := Frequency(s); f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly,
		FrequencyQuarterly, FrequencyYearly, FrequencyOnce:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown frequency %q", ErrBadRequest, s)
}

// Next returns the occurrence after t. Once has no next occurrence and
// returns t unchanged.
func (f Frequency) Next(t time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return t.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		return t.AddDate(0, 3, 0)
	case FrequencyYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t
	}
}

// MonthlyFactor converts one occurrence into a monthly amount.
func (f Frequency) MonthlyFactor() decimal.Decimal {
	switch f {
	case FrequencyDaily:
		return decimal.NewFromInt(30)
	case FrequencyWeekly:
		return decimal.NewFromInt(52).Div(decimal.NewFromInt(12))
	case FrequencyMonthly:
		return decimal.NewFromInt(1)
	case FrequencyQuarterly:
		return decimal.NewFromInt(1).Div(decimal.NewFromInt(3))
	case FrequencyYearly:
		return decimal.NewFromInt(1).Div(decimal.NewFromInt(12))
	default:
		return decimal.Zero
	}
}
