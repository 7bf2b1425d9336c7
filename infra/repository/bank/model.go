package bank

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bank is the single virtual balance of a user.
type Bank struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Balance       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Currency      string          `gorm:"type:char(3);not null;default:EUR"`
	LastUpdatedAt time.Time       `gorm:"not null"`
	CreatedAt     time.Time
}

// TableName specifies the table name for the Bank model.
func (Bank) TableName() string {
	return "banks"
}
