package dto

import (
	"time"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/income"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeCreate is a DTO for inserting an income.
type IncomeCreate struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Type            income.Type
	Amount          decimal.Decimal
	Frequency       domain.Frequency
	NextPaymentDate time.Time
	IsRecurring     bool
	Description     string
}

// IncomeUpdate is a DTO for partial income updates. Nil fields are left
// untouched.
type IncomeUpdate struct {
	Name            *string
	Type            *income.Type
	Amount          *decimal.Decimal
	Frequency       *domain.Frequency
	NextPaymentDate *time.Time
	IsRecurring     *bool
	Description     *string
	IsActive        *bool
	IsArchived      *bool
	ArchivedAt      *time.Time
}

// IncomeRead is a read-optimized DTO for an income.
type IncomeRead struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"userId"`
	Name            string           `json:"name"`
	Type            income.Type      `json:"type"`
	Amount          decimal.Decimal  `json:"amount"`
	Frequency       domain.Frequency `json:"frequency"`
	NextPaymentDate time.Time        `json:"nextPaymentDate"`
	IsRecurring     bool             `json:"isRecurring"`
	IsActive        bool             `json:"isActive"`
	IsArchived      bool             `json:"isArchived"`
	Description     string           `json:"description,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
	ArchivedAt      *time.Time       `json:"archivedAt,omitempty"`
}

// IncomeFilter narrows an income listing.
type IncomeFilter struct {
	IncludeArchived bool
	DueBefore       *time.Time
}

// CreateIncomeRequest is the payload of incomes CREATE.
type CreateIncomeRequest struct {
	Name            string          `json:"name" validate:"required,max=255"`
	Type            string          `json:"type" validate:"required,oneof=salary social_aid bonus investment other"`
	Amount          decimal.Decimal `json:"amount"`
	Frequency       string          `json:"frequency,omitempty" validate:"omitempty,oneof=daily weekly monthly quarterly yearly once"`
	NextPaymentDate time.Time       `json:"nextPaymentDate" validate:"required"`
	IsRecurring     *bool           `json:"isRecurring,omitempty"`
	Description     string          `json:"description,omitempty"`
}

// UpdateIncomeRequest is the payload of incomes UPDATE.
type UpdateIncomeRequest struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Type            *string          `json:"type,omitempty" validate:"omitempty,oneof=salary social_aid bonus investment other"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Frequency       *string          `json:"frequency,omitempty" validate:"omitempty,oneof=daily weekly monthly quarterly yearly once"`
	NextPaymentDate *time.Time       `json:"nextPaymentDate,omitempty"`
	IsRecurring     *bool            `json:"isRecurring,omitempty"`
	IsActive        *bool            `json:"isActive,omitempty"`
	Description     *string          `json:"description,omitempty"`
}

// IncomeQuery is the payload of incomes FIND_ALL.
type IncomeQuery struct {
	IncludeArchived bool `json:"includeArchived,omitempty" query:"includeArchived"`
}

// CreditResult is the reply of incomes CREDIT_NOW.
type CreditResult struct {
	Income *IncomeRead      `json:"income"`
	Entry  *LedgerEntryRead `json:"transaction"`
	Bank   *BankRead        `json:"bank"`
}
