package event

import (
	"context"

	"github.com/amirasaad/finance/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for event and participant data access.
type Repository interface {
	Create(ctx context.Context, create *dto.EventCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.EventRead, error)
	Update(ctx context.Context, id uuid.UUID, update *dto.EventUpdate) error
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*dto.EventRead, error)
	AddParticipant(ctx context.Context, create *dto.EventParticipantCreate) error
	GetParticipant(ctx context.Context, id uuid.UUID) (*dto.EventParticipantRead, error)
	RemoveParticipant(ctx context.Context, id uuid.UUID) error
	DeleteByCreatorID(ctx context.Context, creatorID uuid.UUID) error
}
