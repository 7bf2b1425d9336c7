package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is a shared one-off spending occasion.
type Event struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BudgetID     *uuid.UUID      `gorm:"type:uuid"`
	CreatorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"size:255;not null"`
	Icon         string          `gorm:"size:64"`
	Description  string
	TotalAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency     string          `gorm:"type:char(3);not null;default:EUR"`
	EventDate    time.Time       `gorm:"not null"`
	Status       string          `gorm:"size:16;not null;default:planned"`
	IsArchived   bool            `gorm:"not null;default:false"`
	Participants []Participant   `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ArchivedAt   *time.Time
}

// TableName specifies the table name for the Event model.
func (Event) TableName() string {
	return "events"
}

// Participant owes a percentage of an event's total.
type Participant struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EventID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID     *uuid.UUID      `gorm:"type:uuid"`
	Name       string          `gorm:"size:255;not null"`
	Percentage decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	HasPaid    bool            `gorm:"not null;default:false"`
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for the Participant model.
func (Participant) TableName() string {
	return "event_participants"
}
