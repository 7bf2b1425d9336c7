package bank

import (
	"context"
	"time"

	"github.com/amirasaad/finance/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for the per-user virtual balance.
type Repository interface {
	// Create opens the bank of a user.
	Create(ctx context.Context, create *dto.BankCreate) error

	// GetByUserID reads the bank without locking it.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.BankRead, error)

	// GetByUserIDForUpdate reads the bank and holds a row lock until the
	// surrounding transaction ends.
	GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*dto.BankRead, error)

	// UpdateBalance writes a new balance and its timestamp.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal, at time.Time) error

	// UpdateCurrency changes the currency code only.
	UpdateCurrency(ctx context.Context, id uuid.UUID, currency string, at time.Time) error

	// DeleteByUserID removes the bank of a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
