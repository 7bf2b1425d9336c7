package expense

import (
	"time"

	domainexpense "github.com/amirasaad/finance/pkg/domain/expense"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Expense is an outgoing payment owned by one user. Reversed records that
// the user's share was already credited back by an archive.
type Expense struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name             string          `gorm:"size:255;not null"`
	Icon             string          `gorm:"size:64"`
	Category         string          `gorm:"size:64;index"`
	Description      string
	Amount           decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Frequency        string          `gorm:"size:16;not null;default:once"`
	IsRecurring      bool            `gorm:"not null"`
	NextPaymentDate  *time.Time
	SplitPercentages datatypes.JSONSlice[domainexpense.SplitPercentage]
	IsActive         bool `gorm:"not null"`
	IsArchived       bool `gorm:"not null"`
	Reversed         bool `gorm:"not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ArchivedAt       *time.Time
}

// TableName specifies the table name for the Expense model.
func (Expense) TableName() string {
	return "expenses"
}
