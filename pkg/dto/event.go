package dto

import (
	"time"

	"github.com/amirasaad/finance/pkg/domain/event"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventCreate is a DTO for inserting an event.
type EventCreate struct {
	ID          uuid.UUID
	CreatorID   uuid.UUID
	BudgetID    *uuid.UUID
	Name        string
	Icon        string
	Description string
	TotalAmount decimal.Decimal
	Currency    string
	EventDate   time.Time
	Status      event.Status
}

// EventUpdate is a DTO for partial event updates.
type EventUpdate struct {
	Name        *string
	Icon        *string
	Description *string
	TotalAmount *decimal.Decimal
	EventDate   *time.Time
	Status      *event.Status
	IsArchived  *bool
	ArchivedAt  *time.Time
}

// EventParticipantCreate is a DTO for adding a participant to an event.
type EventParticipantCreate struct {
	ID         uuid.UUID
	EventID    uuid.UUID
	UserID     *uuid.UUID
	Name       string
	Percentage decimal.Decimal
}

// EventParticipantRead is one participant of an event.
type EventParticipantRead struct {
	ID         uuid.UUID       `json:"id"`
	EventID    uuid.UUID       `json:"eventId"`
	UserID     *uuid.UUID      `json:"userId,omitempty"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	HasPaid    bool            `json:"hasPaid"`
	PaidAt     *time.Time      `json:"paidAt,omitempty"`
}

// EventRead is a read-optimized DTO for an event with its participants.
type EventRead struct {
	ID           uuid.UUID               `json:"id"`
	CreatorID    uuid.UUID               `json:"creatorId"`
	BudgetID     *uuid.UUID              `json:"budgetId,omitempty"`
	Name         string                  `json:"name"`
	Icon         string                  `json:"icon,omitempty"`
	Description  string                  `json:"description,omitempty"`
	TotalAmount  decimal.Decimal         `json:"totalAmount"`
	Currency     string                  `json:"currency"`
	EventDate    time.Time               `json:"eventDate"`
	Status       event.Status            `json:"status"`
	IsArchived   bool                    `json:"isArchived"`
	Participants []*EventParticipantRead `json:"participants"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
	ArchivedAt   *time.Time              `json:"archivedAt,omitempty"`
}

// CreateEventRequest is the payload of events CREATE.
type CreateEventRequest struct {
	BudgetID    *uuid.UUID      `json:"budgetId,omitempty"`
	Name        string          `json:"name" validate:"required,max=255"`
	Icon        string          `json:"icon,omitempty" validate:"max=50"`
	Description string          `json:"description,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Currency    string          `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
	EventDate   time.Time       `json:"eventDate" validate:"required"`
	Status      string          `json:"status,omitempty" validate:"omitempty,oneof=planned completed cancelled"`
}

// UpdateEventRequest is the payload of events UPDATE.
type UpdateEventRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Icon        *string          `json:"icon,omitempty" validate:"omitempty,max=50"`
	Description *string          `json:"description,omitempty"`
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty"`
	EventDate   *time.Time       `json:"eventDate,omitempty"`
	Status      *string          `json:"status,omitempty" validate:"omitempty,oneof=planned completed cancelled"`
}

// AddEventParticipantRequest is the payload of events ADD_PARTICIPANT.
type AddEventParticipantRequest struct {
	UserID     *uuid.UUID      `json:"userId,omitempty"`
	Name       string          `json:"name" validate:"required,max=255"`
	Percentage decimal.Decimal `json:"percentage"`
}
