package dto

import (
	"time"

	"github.com/amirasaad/finance/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntryCreate is a DTO for appending a ledger entry. Entries are never
// updated, so there is no update DTO.
type LedgerEntryCreate struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Type            ledger.EntryType
	Amount          decimal.Decimal
	BalanceAfter    decimal.Decimal
	Description     string
	IncomeID        *uuid.UUID
	ExpenseID       *uuid.UUID
	EventID         *uuid.UUID
	BudgetID        *uuid.UUID
	TransactionDate time.Time
}

// LedgerEntryRead is a read-optimized DTO for a ledger entry.
type LedgerEntryRead struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"userId"`
	Type            ledger.EntryType `json:"type"`
	Amount          decimal.Decimal  `json:"amount"`
	BalanceAfter    decimal.Decimal  `json:"balanceAfter"`
	Description     string           `json:"description"`
	IncomeID        *uuid.UUID       `json:"incomeId,omitempty"`
	ExpenseID       *uuid.UUID       `json:"expenseId,omitempty"`
	EventID         *uuid.UUID       `json:"eventId,omitempty"`
	BudgetID        *uuid.UUID       `json:"budgetId,omitempty"`
	TransactionDate time.Time        `json:"transactionDate"`
	CreatedAt       time.Time        `json:"createdAt"`
}
