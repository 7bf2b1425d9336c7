package dto

import (
	"time"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/expense"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCreate is a DTO for inserting an expense.
type ExpenseCreate struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Name             string
	Icon             string
	Category         string
	Description      string
	Amount           decimal.Decimal
	Frequency        domain.Frequency
	IsRecurring      bool
	NextPaymentDate  *time.Time
	SplitPercentages []expense.SplitPercentage
}

// ExpenseUpdate is a DTO for partial expense updates. Nil fields are left
// untouched.
type ExpenseUpdate struct {
	Name             *string
	Icon             *string
	Category         *string
	Description      *string
	Amount           *decimal.Decimal
	Frequency        *domain.Frequency
	IsRecurring      *bool
	NextPaymentDate  *time.Time
	SplitPercentages *[]expense.SplitPercentage
	IsActive         *bool
	IsArchived       *bool
	Reversed         *bool
	ArchivedAt       *time.Time
}

// ExpenseRead is a read-optimized DTO for an expense.
type ExpenseRead struct {
	ID               uuid.UUID                 `json:"id"`
	UserID           uuid.UUID                 `json:"userId"`
	Name             string                    `json:"name"`
	Icon             string                    `json:"icon,omitempty"`
	Category         string                    `json:"category,omitempty"`
	Description      string                    `json:"description,omitempty"`
	Amount           decimal.Decimal           `json:"amount"`
	Frequency        domain.Frequency          `json:"frequency"`
	IsRecurring      bool                      `json:"isRecurring"`
	NextPaymentDate  *time.Time                `json:"nextPaymentDate,omitempty"`
	SplitPercentages []expense.SplitPercentage `json:"splitPercentages,omitempty"`
	IsActive         bool                      `json:"isActive"`
	IsArchived       bool                      `json:"isArchived"`
	Reversed         bool                      `json:"-"`
	CreatedAt        time.Time                 `json:"createdAt"`
	UpdatedAt        time.Time                 `json:"updatedAt"`
	ArchivedAt       *time.Time                `json:"archivedAt,omitempty"`
}

// ExpenseFilter narrows an expense listing. Page and Limit are 1-based and
// already clamped by the caller.
type ExpenseFilter struct {
	Page            int
	Limit           int
	Category        string
	Frequency       domain.Frequency
	StartDate       *time.Time
	EndDate         *time.Time
	IncludeArchived bool
}

// ExpenseList is one page of expenses.
type ExpenseList struct {
	Items []*ExpenseRead `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// CategoryTotal aggregates active expenses of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// ExpenseStatistics summarises a user's expenses.
type ExpenseStatistics struct {
	ActiveCount     int             `json:"activeCount"`
	ArchivedCount   int             `json:"archivedCount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TotalUserShare  decimal.Decimal `json:"totalUserShare"`
	MonthlyEstimate decimal.Decimal `json:"monthlyEstimate"`
	ByCategory      []CategoryTotal `json:"byCategory"`
}

// CreateExpenseRequest is the payload of expenses CREATE.
type CreateExpenseRequest struct {
	Name             string                    `json:"name" validate:"required,max=255"`
	Icon             string                    `json:"icon,omitempty" validate:"max=50"`
	Category         string                    `json:"category,omitempty" validate:"max=100"`
	Description      string                    `json:"description,omitempty"`
	Amount           decimal.Decimal           `json:"amount"`
	Frequency        string                    `json:"frequency,omitempty" validate:"omitempty,oneof=daily weekly monthly quarterly yearly once"`
	IsRecurring      bool                      `json:"isRecurring,omitempty"`
	NextPaymentDate  *time.Time                `json:"nextPaymentDate,omitempty"`
	SplitPercentages []expense.SplitPercentage `json:"splitPercentages" validate:"omitempty,dive"`
}

// UpdateExpenseRequest is the payload of expenses UPDATE. Absent fields keep
// their value. A present splitPercentages list must name at least one participant.
type UpdateExpenseRequest struct {
	Name             *string                    `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Icon             *string                    `json:"icon,omitempty" validate:"omitempty,max=50"`
	Category         *string                    `json:"category,omitempty" validate:"omitempty,max=100"`
	Description      *string                    `json:"description,omitempty"`
	Amount           *decimal.Decimal           `json:"amount,omitempty"`
	Frequency        *string                    `json:"frequency,omitempty" validate:"omitempty,oneof=daily weekly monthly quarterly yearly once"`
	IsRecurring      *bool                      `json:"isRecurring,omitempty"`
	NextPaymentDate  *time.Time                 `json:"nextPaymentDate,omitempty"`
	SplitPercentages *[]expense.SplitPercentage `json:"splitPercentages"`
}

// ExpenseQuery is the payload of expenses FIND_ALL.
type ExpenseQuery struct {
	Page            int        `json:"page,omitempty" query:"page" validate:"omitempty,min=1"`
	Limit           int        `json:"limit,omitempty" query:"limit" validate:"omitempty,min=1,max=100"`
	Category        string     `json:"category,omitempty" query:"category"`
	Frequency       string     `json:"frequency,omitempty" query:"frequency" validate:"omitempty,oneof=daily weekly monthly quarterly yearly once"`
	StartDate       *time.Time `json:"startDate,omitempty" query:"startDate"`
	EndDate         *time.Time `json:"endDate,omitempty" query:"endDate"`
	IncludeArchived bool       `json:"includeArchived,omitempty" query:"includeArchived"`
}
