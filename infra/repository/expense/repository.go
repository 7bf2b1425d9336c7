package expense

import (
	"context"
	"errors"

	"github.com/amirasaad/finance/pkg/domain"
	domainexpense "github.com/amirasaad/finance/pkg/domain/expense"
	"github.com/amirasaad/finance/pkg/dto"
	repo "github.com/amirasaad/finance/pkg/repository/expense"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates an expense repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements expense.Repository.
func (r *repository) Create(ctx context.Context, create *dto.ExpenseCreate) error {
	e := mapCreateDTOToModel(create)
	return r.db.WithContext(ctx).Create(&e).Error
}

// Get implements expense.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.ExpenseRead, error) {
	var e Expense
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&e), nil
}

// Update implements expense.Repository.
func (r *repository) Update(ctx context.Context, id uuid.UUID, update *dto.ExpenseUpdate) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Expense{}).Where("id = ?", id).Updates(updates).Error
}

// Delete implements expense.Repository.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Expense{}, "id = ?", id).Error
}

// List implements expense.Repository.
func (r *repository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.ExpenseFilter,
) ([]*dto.ExpenseRead, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Expense{}).
		Scopes(filtered(userID, filter)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []Expense
	err = r.db.WithContext(ctx).
		Scopes(filtered(userID, filter)).
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return mapModelsToDTO(rows), total, nil
}

func filtered(userID uuid.UUID, filter dto.ExpenseFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", userID)
		if !filter.IncludeArchived {
			db = db.Where("is_active = ? AND is_archived = ?", true, false)
		}
		if filter.Category != "" {
			db = db.Where("category = ?", filter.Category)
		}
		if filter.Frequency != "" {
			db = db.Where("frequency = ?", string(filter.Frequency))
		}
		if filter.StartDate != nil {
			db = db.Where("created_at >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			db = db.Where("created_at <= ?", *filter.EndDate)
		}
		return db
	}
}

// ListAllByUser implements expense.Repository.
func (r *repository) ListAllByUser(ctx context.Context, userID uuid.UUID) ([]*dto.ExpenseRead, error) {
	var rows []Expense
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTO(rows), nil
}

// DeleteByUserID implements expense.Repository.
func (r *repository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Expense{}).Error
}

func mapCreateDTOToModel(create *dto.ExpenseCreate) Expense {
	freq := create.Frequency
	if freq == "" {
		freq = domain.FrequencyOnce
	}
	return Expense{
		ID:               create.ID,
		UserID:           create.UserID,
		Name:             create.Name,
		Icon:             create.Icon,
		Category:         create.Category,
		Description:      create.Description,
		Amount:           create.Amount.Round(2),
		Frequency:        string(freq),
		IsRecurring:      create.IsRecurring,
		NextPaymentDate:  create.NextPaymentDate,
		SplitPercentages: datatypes.NewJSONSlice(create.SplitPercentages),
		IsActive:         true,
	}
}

func mapUpdateDTOToModel(update *dto.ExpenseUpdate) map[string]any {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Icon != nil {
		updates["icon"] = *update.Icon
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Amount != nil {
		updates["amount"] = update.Amount.Round(2)
	}
	if update.Frequency != nil {
		updates["frequency"] = string(*update.Frequency)
	}
	if update.IsRecurring != nil {
		updates["is_recurring"] = *update.IsRecurring
	}
	if update.NextPaymentDate != nil {
		updates["next_payment_date"] = *update.NextPaymentDate
	}
	if update.SplitPercentages != nil {
		updates["split_percentages"] = datatypes.NewJSONSlice(*update.SplitPercentages)
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}
	if update.IsArchived != nil {
		updates["is_archived"] = *update.IsArchived
	}
	if update.Reversed != nil {
		updates["reversed"] = *update.Reversed
	}
	if update.ArchivedAt != nil {
		updates["archived_at"] = *update.ArchivedAt
	}
	return updates
}

func mapModelsToDTO(rows []Expense) []*dto.ExpenseRead {
	result := make([]*dto.ExpenseRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result
}

func mapModelToDTO(e *Expense) *dto.ExpenseRead {
	return &dto.ExpenseRead{
		ID:               e.ID,
		UserID:           e.UserID,
		Name:             e.Name,
		Icon:             e.Icon,
		Category:         e.Category,
		Description:      e.Description,
		Amount:           e.Amount,
		Frequency:        domain.Frequency(e.Frequency),
		IsRecurring:      e.IsRecurring,
		NextPaymentDate:  e.NextPaymentDate,
		SplitPercentages: []domainexpense.SplitPercentage(e.SplitPercentages),
		IsActive:         e.IsActive,
		IsArchived:       e.IsArchived,
		Reversed:         e.Reversed,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
		ArchivedAt:       e.ArchivedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
