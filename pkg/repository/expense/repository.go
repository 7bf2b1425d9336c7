package expense

import (
	"context"

	"github.com/amirasaad/finance/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for expense data access.
type Repository interface {
	Create(ctx context.Context, create *dto.ExpenseCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.ExpenseRead, error)
	Update(ctx context.Context, id uuid.UUID, update *dto.ExpenseUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of a user's expenses and the total match count.
	List(ctx context.Context, userID uuid.UUID, filter dto.ExpenseFilter) ([]*dto.ExpenseRead, int64, error)

	// ListAllByUser returns every expense of a user, archived included.
	ListAllByUser(ctx context.Context, userID uuid.UUID) ([]*dto.ExpenseRead, error)

	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
