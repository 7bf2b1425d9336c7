package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a shared savings goal.
type Budget struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"size:255;not null"`
	Icon          string          `gorm:"size:64"`
	Description   string
	CurrentAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TargetAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency      string          `gorm:"type:char(3);not null;default:EUR"`
	IsActive      bool            `gorm:"not null;default:true"`
	IsArchived    bool            `gorm:"not null;default:false"`
	Participants  []Participant   `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ArchivedAt    *time.Time
}

// TableName specifies the table name for the Budget model.
func (Budget) TableName() string {
	return "budgets"
}

// Participant is a member of a budget. Removal is a soft flag.
type Participant struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BudgetID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID            *uuid.UUID      `gorm:"type:uuid"`
	Name              string          `gorm:"size:255;not null"`
	ContributedAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	IsActive          bool            `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	RemovedAt         *time.Time
}

// TableName specifies the table name for the Participant model.
func (Participant) TableName() string {
	return "budget_participants"
}
