// Package user provides business logic for user profiles, password changes
// and account erasure.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/events"
	domainuser "github.com/amirasaad/finance/pkg/domain/user"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/eventbus"
	"github.com/amirasaad/finance/pkg/ledger"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/amirasaad/finance/pkg/utils"
	"github.com/google/uuid"
)

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, bus: bus, logger: logger}
}

func self(callerID, id uuid.UUID) error {
	if callerID != id {
		return fmt.Errorf("%w: users may only manage their own account", domain.ErrForbidden)
	}
	return nil
}

// FindOne returns the profile of id, which must be the caller.
func (s *Service) FindOne(
	ctx context.Context,
	callerID, id uuid.UUID,
) (*dto.UserRead, error) {
	if err := self(callerID, id); err != nil {
		return nil, err
	}
	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	u, err := users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}
	return u, nil
}

// UpdateUser applies a partial profile change.
func (s *Service) UpdateUser(
	ctx context.Context,
	callerID, id uuid.UUID,
	in dto.UserUpdate,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "UpdateUser", "userID", id)
	if err = self(callerID, id); err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrBadRequest)
		}
		in.Name = &name
	}
	if in.Email != nil {
		email, err := domainuser.NormalizeEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		in.Email = &email
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		current, err := users.Get(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: user not found", domain.ErrNotFound)
		}
		if in.Email != nil && *in.Email != current.Email {
			taken, err := users.ExistsByEmail(ctx, *in.Email)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%w: email already in use", domain.ErrConflict)
			}
		}
		if err := users.Update(ctx, id, &in); err != nil {
			return err
		}
		u, err = users.Get(ctx, id)
		return err
	})
	if err != nil {
		log.Error("failed to update user", "error", err)
		return nil, err
	}
	return u, nil
}

// UpdatePassword replaces the password of id.
func (s *Service) UpdatePassword(
	ctx context.Context,
	callerID, id uuid.UUID,
	in dto.UpdatePasswordRequest,
) error {
	if err := self(callerID, id); err != nil {
		return err
	}
	if err := domainuser.ValidatePassword(in.Password); err != nil {
		return err
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return err
	}
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetByUserID(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("%w: user not found", domain.ErrNotFound)
		}
		return accounts.UpdateByUserID(ctx, id, &dto.AccountUpdate{PasswordHash: &hash})
	})
}

// Delete erases the user and everything they own in one transaction: the
// ledger, expenses, incomes, budgets, events, bank and credentials.
func (s *Service) Delete(
	ctx context.Context,
	callerID, id uuid.UUID,
) error {
	log := s.logger.With("context", "DeleteUser", "userID", id)
	if err := self(callerID, id); err != nil {
		return err
	}

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := users.Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return fmt.Errorf("%w: user not found", domain.ErrNotFound)
		}

		entries, err := uow.LedgerRepository()
		if err != nil {
			return err
		}
		expenses, err := uow.ExpenseRepository()
		if err != nil {
			return err
		}
		incomes, err := uow.IncomeRepository()
		if err != nil {
			return err
		}
		budgets, err := uow.BudgetRepository()
		if err != nil {
			return err
		}
		evts, err := uow.EventRepository()
		if err != nil {
			return err
		}
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}

		for _, erase := range []func(context.Context, uuid.UUID) error{
			entries.DeleteByUserID,
			expenses.DeleteByUserID,
			incomes.DeleteByUserID,
			budgets.DeleteByUserID,
			evts.DeleteByCreatorID,
			banks.DeleteByUserID,
			accounts.DeleteByUserID,
			users.Delete,
		} {
			if err := erase(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to erase user", "error", err)
		return err
	}
	log.Info("user erased")
	eventbus.EmitAll(ctx, s.bus, log, events.UserErased{UserID: id, OccurredAt: ledger.Now()})
	return nil
}
