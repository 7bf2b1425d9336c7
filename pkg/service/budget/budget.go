// Package budget manages shared budgets and their participants. Budgets
// are bookkeeping only and never touch the bank balance.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/finance/pkg/domain"
	domainbank "github.com/amirasaad/finance/pkg/domain/bank"
	domainbudget "github.com/amirasaad/finance/pkg/domain/budget"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/ledger"
	"github.com/amirasaad/finance/pkg/repository"
	budgetrepo "github.com/amirasaad/finance/pkg/repository/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides budget operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new budget Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Owned loads a budget and checks that userID owns it.
func Owned(
	ctx context.Context,
	budgets budgetrepo.Repository,
	userID, id uuid.UUID,
) (*dto.BudgetRead, error) {
	b, err := budgets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: budget not found", domain.ErrNotFound)
	}
	if b.UserID != userID {
		return nil, fmt.Errorf("%w: budget belongs to another user", domain.ErrForbidden)
	}
	return b, nil
}

func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in dto.CreateBudgetRequest,
) (b *dto.BudgetRead, err error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrBadRequest)
	}
	if err = domainbudget.ValidateTarget(in.TargetAmount); err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = domainbank.DefaultCurrency
	}
	if err = domainbank.ValidateCurrency(currency); err != nil {
		return nil, err
	}

	id := uuid.New()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := uow.BudgetRepository()
		if err != nil {
			return err
		}
		if err := budgets.Create(ctx, &dto.BudgetCreate{
			ID:           id,
			UserID:       userID,
			Name:         name,
			Icon:         in.Icon,
			Description:  in.Description,
			TargetAmount: in.TargetAmount.Round(2),
			Currency:     currency,
		}); err != nil {
			return err
		}
		b, err = budgets.Get(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Error("failed to create budget", "userID", userID, "error", err)
		return nil, err
	}
	return b, nil
}

func (s *Service) FindAll(ctx context.Context, userID uuid.UUID) ([]*dto.BudgetRead, error) {
	budgets, err := s.uow.BudgetRepository()
	if err != nil {
		return nil, err
	}
	return budgets.ListByUser(ctx, userID)
}

func (s *Service) FindOne(ctx context.Context, userID, id uuid.UUID) (*dto.BudgetRead, error) {
	budgets, err := s.uow.BudgetRepository()
	if err != nil {
		return nil, err
	}
	return Owned(ctx, budgets, userID, id)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in dto.UpdateBudgetRequest,
) (b *dto.BudgetRead, err error) {
	update := &dto.BudgetUpdate{
		Icon:        in.Icon,
		Description: in.Description,
		IsActive:    in.IsActive,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrBadRequest)
		}
		update.Name = &name
	}
	if in.TargetAmount != nil {
		if err = domainbudget.ValidateTarget(*in.TargetAmount); err != nil {
			return nil, err
		}
		target := in.TargetAmount.Round(2)
		update.TargetAmount = &target
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := uow.BudgetRepository()
		if err != nil {
			return err
		}
		if _, err := Owned(ctx, budgets, userID, id); err != nil {
			return err
		}
		if err := budgets.Update(ctx, id, update); err != nil {
			return err
		}
		b, err = budgets.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Delete archives the budget.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) (b *dto.BudgetRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := uow.BudgetRepository()
		if err != nil {
			return err
		}
		current, err := Owned(ctx, budgets, userID, id)
		if err != nil {
			return err
		}
		if current.IsArchived {
			b = current
			return nil
		}
		now := ledger.Now()
		inactive, archived := false, true
		if err := budgets.Update(ctx, id, &dto.BudgetUpdate{
			IsActive:   &inactive,
			IsArchived: &archived,
			ArchivedAt: &now,
		}); err != nil {
			return err
		}
		b, err = budgets.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) AddParticipant(
	ctx context.Context,
	userID, id uuid.UUID,
	in dto.AddBudgetParticipantRequest,
) (b *dto.BudgetRead, err error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: participant name is required", domain.ErrBadRequest)
	}
	contributed := decimal.Zero
	if in.ContributedAmount != nil {
		if in.ContributedAmount.IsNegative() {
			return nil, fmt.Errorf("%w: contributed amount must not be negative", domain.ErrBadRequest)
		}
		contributed = in.ContributedAmount.Round(2)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := uow.BudgetRepository()
		if err != nil {
			return err
		}
		current, err := Owned(ctx, budgets, userID, id)
		if err != nil {
			return err
		}
		if current.IsArchived {
			return fmt.Errorf("%w: budget is archived", domain.ErrBadRequest)
		}
		if err := budgets.AddParticipant(ctx, &dto.BudgetParticipantCreate{
			ID:                uuid.New(),
			BudgetID:          id,
			UserID:            in.UserID,
			Name:              name,
			ContributedAmount: contributed,
		}); err != nil {
			return err
		}
		b, err = budgets.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// RemoveParticipant deactivates a participant. The row is kept so the
// contribution history survives.
func (s *Service) RemoveParticipant(
	ctx context.Context,
	userID, id, participantID uuid.UUID,
) (b *dto.BudgetRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		budgets, err := uow.BudgetRepository()
		if err != nil {
			return err
		}
		if _, err := Owned(ctx, budgets, userID, id); err != nil {
			return err
		}
		p, err := budgets.GetParticipant(ctx, participantID)
		if err != nil {
			return err
		}
		if p == nil || p.BudgetID != id || !p.IsActive {
			return fmt.Errorf("%w: participant not found", domain.ErrNotFound)
		}
		if err := budgets.RemoveParticipant(ctx, participantID, ledger.Now()); err != nil {
			return err
		}
		b, err = budgets.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}
