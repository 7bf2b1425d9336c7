package budget

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/finance/pkg/dto"
	repo "github.com/amirasaad/finance/pkg/repository/budget"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a budget repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.BudgetCreate) error {
	b := Budget{
		ID:           create.ID,
		UserID:       create.UserID,
		Name:         create.Name,
		Icon:         create.Icon,
		Description:  create.Description,
		TargetAmount: create.TargetAmount.Round(2),
		Currency:     create.Currency,
		IsActive:     true,
	}
	return r.db.WithContext(ctx).Create(&b).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.BudgetRead, error) {
	var b Budget
	err := r.db.WithContext(ctx).
		Preload("Participants", "is_active = ?", true).
		First(&b, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&b), nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, update *dto.BudgetUpdate) error {
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
	if update.TargetAmount != nil {
		updates["target_amount"] = update.TargetAmount.Round(2)
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
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
	return r.db.WithContext(ctx).Model(&Budget{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.BudgetRead, error) {
	var rows []Budget
	err := r.db.WithContext(ctx).
		Preload("Participants", "is_active = ?", true).
		Where("user_id = ? AND is_archived = ?", userID, false).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.BudgetRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) AddParticipant(ctx context.Context, create *dto.BudgetParticipantCreate) error {
	p := Participant{
		ID:                create.ID,
		BudgetID:          create.BudgetID,
		UserID:            create.UserID,
		Name:              create.Name,
		ContributedAmount: create.ContributedAmount.Round(2),
		IsActive:          true,
	}
	return r.db.WithContext(ctx).Create(&p).Error
}

func (r *repository) GetParticipant(ctx context.Context, id uuid.UUID) (*dto.BudgetParticipantRead, error) {
	var p Participant
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapParticipantToDTO(&p), nil
}

func (r *repository) RemoveParticipant(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&Participant{}).Where("id = ?", id).Updates(map[string]any{
		"is_active":  false,
		"removed_at": at,
	}).Error
}

func (r *repository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	owned := db.Model(&Budget{}).Select("id").Where("user_id = ?", userID)
	if err := db.Where("budget_id IN (?)", owned).Delete(&Participant{}).Error; err != nil {
		return err
	}
	return db.Where("user_id = ?", userID).Delete(&Budget{}).Error
}

func mapModelToDTO(b *Budget) *dto.BudgetRead {
	participants := make([]*dto.BudgetParticipantRead, 0, len(b.Participants))
	for i := range b.Participants {
		participants = append(participants, mapParticipantToDTO(&b.Participants[i]))
	}
	return &dto.BudgetRead{
		ID:            b.ID,
		UserID:        b.UserID,
		Name:          b.Name,
		Icon:          b.Icon,
		Description:   b.Description,
		CurrentAmount: b.CurrentAmount,
		TargetAmount:  b.TargetAmount,
		Currency:      b.Currency,
		IsActive:      b.IsActive,
		IsArchived:    b.IsArchived,
		Participants:  participants,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		ArchivedAt:    b.ArchivedAt,
	}
}

func mapParticipantToDTO(p *Participant) *dto.BudgetParticipantRead {
	return &dto.BudgetParticipantRead{
		ID:                p.ID,
		BudgetID:          p.BudgetID,
		UserID:            p.UserID,
		Name:              p.Name,
		ContributedAmount: p.ContributedAmount,
		IsActive:          p.IsActive,
		RemovedAt:         p.RemovedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
