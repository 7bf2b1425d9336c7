package budget

import (
	"context"
	"time"

	"github.com/amirasaad/finance/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for budget and participant data access.
type Repository interface {
	Create(ctx context.Context, create *dto.BudgetCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.BudgetRead, error)
	Update(ctx context.Context, id uuid.UUID, update *dto.BudgetUpdate) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.BudgetRead, error)
	AddParticipant(ctx context.Context, create *dto.BudgetParticipantCreate) error
	GetParticipant(ctx context.Context, id uuid.UUID) (*dto.BudgetParticipantRead, error)
	RemoveParticipant(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
