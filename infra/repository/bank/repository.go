package bank

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/finance/pkg/dto"
	repo "github.com/amirasaad/finance/pkg/repository/bank"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates a bank repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements bank.Repository.
func (r *repository) Create(ctx context.Context, create *dto.BankCreate) error {
	b := Bank{
		ID:            create.ID,
		UserID:        create.UserID,
		Balance:       create.Balance.Round(2),
		Currency:      create.Currency,
		LastUpdatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(&b).Error
}

// GetByUserID implements bank.Repository.
func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.BankRead, error) {
	return r.get(r.db.WithContext(ctx), userID)
}

// GetByUserIDForUpdate implements bank.Repository. On dialects without row
// locks the clause is dropped by the driver.
func (r *repository) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*dto.BankRead, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *repository) get(db *gorm.DB, userID uuid.UUID) (*dto.BankRead, error) {
	var b Bank
	if err := db.Where("user_id = ?", userID).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&b), nil
}

// UpdateBalance implements bank.Repository.
func (r *repository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal, at time.Time) error {
	return r.db.WithContext(ctx).Model(&Bank{}).Where("id = ?", id).Updates(map[string]any{
		"balance":         balance,
		"last_updated_at": at,
	}).Error
}

// UpdateCurrency implements bank.Repository.
func (r *repository) UpdateCurrency(ctx context.Context, id uuid.UUID, currency string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&Bank{}).Where("id = ?", id).Updates(map[string]any{
		"currency":        currency,
		"last_updated_at": at,
	}).Error
}

// DeleteByUserID implements bank.Repository.
func (r *repository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Bank{}).Error
}

func mapModelToDTO(b *Bank) *dto.BankRead {
	return &dto.BankRead{
		ID:            b.ID,
		UserID:        b.UserID,
		Balance:       b.Balance,
		Currency:      b.Currency,
		LastUpdatedAt: b.LastUpdatedAt,
		CreatedAt:     b.CreatedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
