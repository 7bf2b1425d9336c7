package repository

import (
	"errors"

	"github.com/amirasaad/finance/pkg/domain"
	"gorm.io/gorm"
)

// toDomainError maps gorm's translated driver errors onto domain
// sentinels. Anything else comes back untouched.
func toDomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrBadRequest
	default:
		return err
	}
}
