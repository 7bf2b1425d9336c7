package income

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Income is a recurring or one-off incoming payment. Incomes never touch the
// balance until they are credited.
type Income struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"size:255;not null"`
	Type            string          `gorm:"size:32;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Frequency       string          `gorm:"size:16;not null;default:monthly"`
	NextPaymentDate time.Time       `gorm:"not null"`
	IsRecurring     bool            `gorm:"not null"`
	IsActive        bool            `gorm:"not null"`
	IsArchived      bool            `gorm:"not null"`
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ArchivedAt      *time.Time
}

// TableName specifies the table name for the Income model.
func (Income) TableName() string {
	return "incomes"
}
