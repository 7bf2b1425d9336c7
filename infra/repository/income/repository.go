package income

import (
	"context"
	"errors"

	"github.com/amirasaad/finance/pkg/domain"
	domainincome "github.com/amirasaad/finance/pkg/domain/income"
	"github.com/amirasaad/finance/pkg/dto"
	repo "github.com/amirasaad/finance/pkg/repository/income"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates an income repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements income.Repository.
func (r *repository) Create(ctx context.Context, create *dto.IncomeCreate) error {
	freq := create.Frequency
	if freq == "" {
		freq = domain.FrequencyMonthly
	}
	in := Income{
		ID:              create.ID,
		UserID:          create.UserID,
		Name:            create.Name,
		Type:            string(create.Type),
		Amount:          create.Amount.Round(2),
		Frequency:       string(freq),
		NextPaymentDate: create.NextPaymentDate,
		IsRecurring:     create.IsRecurring,
		IsActive:        true,
		Description:     create.Description,
	}
	return r.db.WithContext(ctx).Create(&in).Error
}

// Get implements income.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.IncomeRead, error) {
	var in Income
	if err := r.db.WithContext(ctx).First(&in, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&in), nil
}

// Update implements income.Repository.
func (r *repository) Update(ctx context.Context, id uuid.UUID, update *dto.IncomeUpdate) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Income{}).Where("id = ?", id).Updates(updates).Error
}

// Delete implements income.Repository.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Income{}, "id = ?", id).Error
}

// ListByUser implements income.Repository.
func (r *repository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.IncomeFilter,
) ([]*dto.IncomeRead, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !filter.IncludeArchived {
		q = q.Where("is_active = ? AND is_archived = ?", true, false)
	}
	if filter.DueBefore != nil {
		q = q.Where("next_payment_date <= ?", *filter.DueBefore)
	}
	var rows []Income
	if err := q.Order("next_payment_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.IncomeRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

// DeleteByUserID implements income.Repository.
func (r *repository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Income{}).Error
}

func mapUpdateDTOToModel(update *dto.IncomeUpdate) map[string]any {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Type != nil {
		updates["type"] = string(*update.Type)
	}
	if update.Amount != nil {
		updates["amount"] = update.Amount.Round(2)
	}
	if update.Frequency != nil {
		updates["frequency"] = string(*update.Frequency)
	}
	if update.NextPaymentDate != nil {
		updates["next_payment_date"] = *update.NextPaymentDate
	}
	if update.IsRecurring != nil {
		updates["is_recurring"] = *update.IsRecurring
	}
	if update.Description != nil {
		updates["description"] = *update.Description
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
	return updates
}

func mapModelToDTO(in *Income) *dto.IncomeRead {
	return &dto.IncomeRead{
		ID:              in.ID,
		UserID:          in.UserID,
		Name:            in.Name,
		Type:            domainincome.Type(in.Type),
		Amount:          in.Amount,
		Frequency:       domain.Frequency(in.Frequency),
		NextPaymentDate: in.NextPaymentDate,
		IsRecurring:     in.IsRecurring,
		IsActive:        in.IsActive,
		IsArchived:      in.IsArchived,
		Description:     in.Description,
		CreatedAt:       in.CreatedAt,
		UpdatedAt:       in.UpdatedAt,
		ArchivedAt:      in.ArchivedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
