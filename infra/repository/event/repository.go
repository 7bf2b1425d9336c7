package event

import (
	"context"
	"errors"

	domainevent "github.com/amirasaad/finance/pkg/domain/event"
	"github.com/amirasaad/finance/pkg/dto"
	repo "github.com/amirasaad/finance/pkg/repository/event"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates an event repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.EventCreate) error {
	status := create.Status
	if status == "" {
		status = domainevent.StatusPlanned
	}
	e := Event{
		ID:          create.ID,
		BudgetID:    create.BudgetID,
		CreatorID:   create.CreatorID,
		Name:        create.Name,
		Icon:        create.Icon,
		Description: create.Description,
		TotalAmount: create.TotalAmount.Round(2),
		Currency:    create.Currency,
		EventDate:   create.EventDate,
		Status:      string(status),
	}
	return r.db.WithContext(ctx).Create(&e).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.EventRead, error) {
	var e Event
	if err := r.db.WithContext(ctx).Preload("Participants").First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&e), nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, update *dto.EventUpdate) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Icon != nil {
		updates["icon"] = *update.Icon
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.TotalAmount != nil {
		updates["total_amount"] = update.TotalAmount.Round(2)
	}
	if update.EventDate != nil {
		updates["event_date"] = *update.EventDate
	}
	if update.Status != nil {
		updates["status"] = string(*update.Status)
	}
	if update.IsArchived != nil {
		updates["is_archived"] = *update.IsArchived
	}
	if update.ArchivedAt != nil {
		updates["archived_at"] = *update.ArchivedAt
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*dto.EventRead, error) {
	var rows []Event
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("creator_id = ? AND is_archived = ?", creatorID, false).
		Order("event_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.EventRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) AddParticipant(ctx context.Context, create *dto.EventParticipantCreate) error {
	p := Participant{
		ID:         create.ID,
		EventID:    create.EventID,
		UserID:     create.UserID,
		Name:       create.Name,
		Percentage: create.Percentage.Round(2),
	}
	return r.db.WithContext(ctx).Create(&p).Error
}

func (r *repository) GetParticipant(ctx context.Context, id uuid.UUID) (*dto.EventParticipantRead, error) {
	var p Participant
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapParticipantToDTO(&p), nil
}

func (r *repository) RemoveParticipant(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Participant{}, "id = ?", id).Error
}

func (r *repository) DeleteByCreatorID(ctx context.Context, creatorID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	owned := db.Model(&Event{}).Select("id").Where("creator_id = ?", creatorID)
	if err := db.Where("event_id IN (?)", owned).Delete(&Participant{}).Error; err != nil {
		return err
	}
	return db.Where("creator_id = ?", creatorID).Delete(&Event{}).Error
}

func mapModelToDTO(e *Event) *dto.EventRead {
	participants := make([]*dto.EventParticipantRead, 0, len(e.Participants))
	for i := range e.Participants {
		participants = append(participants, mapParticipantToDTO(&e.Participants[i]))
	}
	return &dto.EventRead{
		ID:           e.ID,
		CreatorID:    e.CreatorID,
		BudgetID:     e.BudgetID,
		Name:         e.Name,
		Icon:         e.Icon,
		Description:  e.Description,
		TotalAmount:  e.TotalAmount,
		Currency:     e.Currency,
		EventDate:    e.EventDate,
		Status:       domainevent.Status(e.Status),
		IsArchived:   e.IsArchived,
		Participants: participants,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
		ArchivedAt:   e.ArchivedAt,
	}
}

func mapParticipantToDTO(p *Participant) *dto.EventParticipantRead {
	return &dto.EventParticipantRead{
		ID:         p.ID,
		EventID:    p.EventID,
		UserID:     p.UserID,
		Name:       p.Name,
		Percentage: p.Percentage,
		HasPaid:    p.HasPaid,
		PaidAt:     p.PaidAt,
	}
}

var _ repo.Repository = (*repository)(nil)
