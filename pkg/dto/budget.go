package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetCreate is a DTO for inserting a budget.
type BudgetCreate struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Icon         string
	Description  string
	TargetAmount decimal.Decimal
	Currency     string
}

// BudgetUpdate is a DTO for partial budget updates.
type BudgetUpdate struct {
	Name         *string
	Icon         *string
	Description  *string
	TargetAmount *decimal.Decimal
	IsActive     *bool
	IsArchived   *bool
	ArchivedAt   *time.Time
}

// BudgetParticipantRead is one member of a budget.
type BudgetParticipantRead struct {
	ID                uuid.UUID       `json:"id"`
	BudgetID          uuid.UUID       `json:"budgetId"`
	UserID            *uuid.UUID      `json:"userId,omitempty"`
	Name              string          `json:"name"`
	ContributedAmount decimal.Decimal `json:"contributedAmount"`
	IsActive          bool            `json:"isActive"`
	RemovedAt         *time.Time      `json:"removedAt,omitempty"`
}

// BudgetParticipantCreate is a DTO for adding a member to a budget.
type BudgetParticipantCreate struct {
	ID                uuid.UUID
	BudgetID          uuid.UUID
	UserID            *uuid.UUID
	Name              string
	ContributedAmount decimal.Decimal
}

// BudgetRead is a read-optimized DTO for a budget with its participants.
type BudgetRead struct {
	ID            uuid.UUID                `json:"id"`
	UserID        uuid.UUID                `json:"userId"`
	Name          string                   `json:"name"`
	Icon          string                   `json:"icon,omitempty"`
	Description   string                   `json:"description,omitempty"`
	CurrentAmount decimal.Decimal          `json:"currentAmount"`
	TargetAmount  decimal.Decimal          `json:"targetAmount"`
	Currency      string                   `json:"currency"`
	IsActive      bool                     `json:"isActive"`
	IsArchived    bool                     `json:"isArchived"`
	Participants  []*BudgetParticipantRead `json:"participants"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
	ArchivedAt    *time.Time               `json:"archivedAt,omitempty"`
}

// CreateBudgetRequest is the payload of budgets CREATE.
type CreateBudgetRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	Icon         string          `json:"icon,omitempty" validate:"max=50"`
	Description  string          `json:"description,omitempty"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Currency     string          `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
}

// UpdateBudgetRequest is the payload of budgets UPDATE.
type UpdateBudgetRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Icon         *string          `json:"icon,omitempty" validate:"omitempty,max=50"`
	Description  *string          `json:"description,omitempty"`
	TargetAmount *decimal.Decimal `json:"targetAmount,omitempty"`
	IsActive     *bool            `json:"isActive,omitempty"`
}

// AddBudgetParticipantRequest is the payload of budgets ADD_PARTICIPANT.
type AddBudgetParticipantRequest struct {
	UserID            *uuid.UUID       `json:"userId,omitempty"`
	Name              string           `json:"name" validate:"required,max=255"`
	ContributedAmount *decimal.Decimal `json:"contributedAmount,omitempty"`
}
