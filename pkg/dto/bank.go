package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankCreate is a DTO for opening a user's bank.
type BankCreate struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Balance  decimal.Decimal
	Currency string
}

// BankRead is a read-optimized DTO for the virtual balance.
type BankRead struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// BalanceChange is the payload of ADD_BALANCE and SUBTRACT_BALANCE.
type BalanceChange struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// CurrencyChange is the payload of UPDATE_CURRENCY.
type CurrencyChange struct {
	Currency string `json:"currency"`
}
