package income

import (
	"context"

	"github.com/amirasaad/finance/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for income data access.
type Repository interface {
	Create(ctx context.Context, create *dto.IncomeCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.IncomeRead, error)
	Update(ctx context.Context, id uuid.UUID, update *dto.IncomeUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, filter dto.IncomeFilter) ([]*dto.IncomeRead, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
