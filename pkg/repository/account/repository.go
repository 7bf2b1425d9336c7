package account

import (
	"context"

	"github.com/amirasaad/finance/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for credential data access. There is
// exactly one account per user.
type Repository interface {
	Create(ctx context.Context, create *dto.AccountCreate) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.AccountRead, error)
	UpdateByUserID(ctx context.Context, userID uuid.UUID, update *dto.AccountUpdate) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
