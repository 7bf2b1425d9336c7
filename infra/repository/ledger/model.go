package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one immutable ledger entry.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type            string          `gorm:"size:32;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	BalanceAfter    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description     string          `gorm:"not null"`
	IncomeID        *uuid.UUID      `gorm:"type:uuid;index"`
	ExpenseID       *uuid.UUID      `gorm:"type:uuid;index"`
	EventID         *uuid.UUID      `gorm:"type:uuid"`
	BudgetID        *uuid.UUID      `gorm:"type:uuid"`
	TransactionDate time.Time       `gorm:"not null"`
	CreatedAt       time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
