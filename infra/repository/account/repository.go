package account

import (
	"context"
	"errors"

	"github.com/amirasaad/finance/pkg/dto"
	repo "github.com/amirasaad/finance/pkg/repository/account"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates an account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements account.Repository.
func (r *repository) Create(ctx context.Context, create *dto.AccountCreate) error {
	acct := Account{
		ID:                    create.ID,
		UserID:                create.UserID,
		Password:              create.PasswordHash,
		RefreshToken:          create.RefreshTokenHash,
		RefreshTokenExpiresAt: create.RefreshTokenExpiresAt,
	}
	return r.db.WithContext(ctx).Create(&acct).Error
}

// GetByUserID implements account.Repository.
func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*dto.AccountRead, error) {
	var acct Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&acct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&acct), nil
}

// UpdateByUserID implements account.Repository.
func (r *repository) UpdateByUserID(ctx context.Context, userID uuid.UUID, update *dto.AccountUpdate) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Account{}).Where("user_id = ?", userID).Updates(updates).Error
}

// DeleteByUserID implements account.Repository.
func (r *repository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Account{}).Error
}

func mapUpdateDTOToModel(update *dto.AccountUpdate) map[string]any {
	updates := make(map[string]any)
	if update.PasswordHash != nil {
		updates["password"] = *update.PasswordHash
	}
	if update.RefreshTokenHash != nil {
		updates["refresh_token"] = *update.RefreshTokenHash
	}
	if update.RefreshTokenExpiresAt != nil {
		updates["refresh_token_expires_at"] = *update.RefreshTokenExpiresAt
	}
	return updates
}

func mapModelToDTO(acct *Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:                    acct.ID,
		UserID:                acct.UserID,
		PasswordHash:          acct.Password,
		RefreshTokenHash:      acct.RefreshToken,
		RefreshTokenExpiresAt: acct.RefreshTokenExpiresAt,
		CreatedAt:             acct.CreatedAt,
		UpdatedAt:             acct.UpdatedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
