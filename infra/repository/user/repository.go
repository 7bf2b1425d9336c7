package user

import (
	"context"
	"errors"

	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM backed user repository.
func New(db *gorm.DB) user.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.UserCreate) error {
	u := mapCreateDTOToModel(create)
	return r.db.WithContext(ctx).Create(&u).Error
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}

func mapCreateDTOToModel(create *dto.UserCreate) User {
	return User{
		ID:                create.ID,
		Name:              create.Name,
		Email:             create.Email,
		PhoneNumber:       create.PhoneNumber,
		Lang:              create.Lang,
		IsActive:          true,
		EmailNotification: true,
	}
}

// mapUpdateDTOToModel keeps only the fields the caller set.
func mapUpdateDTOToModel(update *dto.UserUpdate) map[string]any {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.PhoneNumber != nil {
		updates["phone_number"] = *update.PhoneNumber
	}
	if update.Image != nil {
		updates["image"] = *update.Image
	}
	if update.Lang != nil {
		updates["lang"] = *update.Lang
	}
	if update.EmailNotification != nil {
		updates["email_notification"] = *update.EmailNotification
	}
	if update.SMSNotification != nil {
		updates["sms_notification"] = *update.SMSNotification
	}
	return updates
}

func mapModelToDTO(u *User) *dto.UserRead {
	return &dto.UserRead{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		PhoneNumber:       u.PhoneNumber,
		EmailVerified:     u.EmailVerified,
		Image:             u.Image,
		Lang:              u.Lang,
		IsActive:          u.IsActive,
		EmailNotification: u.EmailNotification,
		SMSNotification:   u.SMSNotification,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

var _ user.Repository = (*repository)(nil)
