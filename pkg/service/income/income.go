// Package income provides business logic for incomes. Incomes are plans:
// creating, archiving or erasing one never moves the balance. Only
// CreditNow posts money to the ledger.
package income

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/finance/pkg/domain"
	domainincome "github.com/amirasaad/finance/pkg/domain/income"
	domainledger "github.com/amirasaad/finance/pkg/domain/ledger"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/eventbus"
	"github.com/amirasaad/finance/pkg/ledger"
	"github.com/amirasaad/finance/pkg/repository"
	incomerepo "github.com/amirasaad/finance/pkg/repository/income"
	"github.com/google/uuid"
)

// Service provides income operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a new income Service.
func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, bus: bus, logger: logger}
}

// Create records an expected income. The user must have a bank.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in dto.CreateIncomeRequest,
) (i *dto.IncomeRead, err error) {
	log := s.logger.With("context", "CreateIncome", "userID", userID)
	create, err := createFromRequest(userID, in)
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		b, err := banks.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("%w: bank not found", domain.ErrNotFound)
		}
		incomes, err := uow.IncomeRepository()
		if err != nil {
			return err
		}
		if err := incomes.Create(ctx, create); err != nil {
			return err
		}
		i, err = incomes.Get(ctx, create.ID)
		return err
	})
	if err != nil {
		log.Error("failed to create income", "error", err)
		return nil, err
	}
	log.Info("income created", "incomeID", i.ID)
	return i, nil
}

func createFromRequest(userID uuid.UUID, in dto.CreateIncomeRequest) (*dto.IncomeCreate, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrBadRequest)
	}
	if err := domainincome.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	typ, err := domainincome.ParseType(in.Type)
	if err != nil {
		return nil, err
	}
	freq, err := domain.ParseFrequency(in.Frequency, domain.FrequencyMonthly)
	if err != nil {
		return nil, err
	}
	if err := domainincome.ValidateNextPaymentDate(in.NextPaymentDate, ledger.Now()); err != nil {
		return nil, err
	}
	recurring := freq != domain.FrequencyOnce
	if in.IsRecurring != nil {
		recurring = *in.IsRecurring
	}
	return &dto.IncomeCreate{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		Type:            typ,
		Amount:          in.Amount.Round(2),
		Frequency:       freq,
		NextPaymentDate: in.NextPaymentDate.UTC(),
		IsRecurring:     recurring,
		Description:     in.Description,
	}, nil
}

// FindAll lists the user's active incomes, or all of them when
// includeArchived is set.
func (s *Service) FindAll(
	ctx context.Context,
	userID uuid.UUID,
	q dto.IncomeQuery,
) ([]*dto.IncomeRead, error) {
	incomes, err := s.uow.IncomeRepository()
	if err != nil {
		return nil, err
	}
	return incomes.ListByUser(ctx, userID, dto.IncomeFilter{IncludeArchived: q.IncludeArchived})
}

// FindDue lists active incomes whose payment date has come.
func (s *Service) FindDue(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.IncomeRead, error) {
	incomes, err := s.uow.IncomeRepository()
	if err != nil {
		return nil, err
	}
	now := ledger.Now()
	return incomes.ListByUser(ctx, userID, dto.IncomeFilter{DueBefore: &now})
}

// FindOne returns one income of the user.
func (s *Service) FindOne(
	ctx context.Context,
	userID, id uuid.UUID,
) (*dto.IncomeRead, error) {
	incomes, err := s.uow.IncomeRepository()
	if err != nil {
		return nil, err
	}
	return owned(ctx, incomes, userID, id)
}

func owned(
	ctx context.Context,
	incomes incomerepo.Repository,
	userID, id uuid.UUID,
) (*dto.IncomeRead, error) {
	i, err := incomes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, fmt.Errorf("%w: income not found", domain.ErrNotFound)
	}
	if i.UserID != userID {
		return nil, fmt.Errorf("%w: income belongs to another user", domain.ErrForbidden)
	}
	return i, nil
}

// Update applies a partial change to an income.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in dto.UpdateIncomeRequest,
) (i *dto.IncomeRead, err error) {
	log := s.logger.With("context", "UpdateIncome", "userID", userID, "incomeID", id)
	update, err := updateFromRequest(in)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		incomes, err := uow.IncomeRepository()
		if err != nil {
			return err
		}
		current, err := owned(ctx, incomes, userID, id)
		if err != nil {
			return err
		}
		if current.IsArchived && update.IsActive != nil {
			return fmt.Errorf("%w: archived income cannot be reactivated", domain.ErrBadRequest)
		}
		if err := incomes.Update(ctx, id, update); err != nil {
			return err
		}
		i, err = incomes.Get(ctx, id)
		return err
	})
	if err != nil {
		log.Error("failed to update income", "error", err)
		return nil, err
	}
	return i, nil
}

func updateFromRequest(in dto.UpdateIncomeRequest) (*dto.IncomeUpdate, error) {
	u := &dto.IncomeUpdate{
		IsRecurring: in.IsRecurring,
		IsActive:    in.IsActive,
		Description: in.Description,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrBadRequest)
		}
		u.Name = &name
	}
	if in.Type != nil {
		typ, err := domainincome.ParseType(*in.Type)
		if err != nil {
			return nil, err
		}
		u.Type = &typ
	}
	if in.Amount != nil {
		if err := domainincome.ValidateAmount(*in.Amount); err != nil {
			return nil, err
		}
		amount := in.Amount.Round(2)
		u.Amount = &amount
	}
	if in.Frequency != nil {
		freq, err := domain.ParseFrequency(*in.Frequency, domain.FrequencyMonthly)
		if err != nil {
			return nil, err
		}
		u.Frequency = &freq
	}
	if in.NextPaymentDate != nil {
		if err := domainincome.ValidateNextPaymentDate(*in.NextPaymentDate, ledger.Now()); err != nil {
			return nil, err
		}
		date := in.NextPaymentDate.UTC()
		u.NextPaymentDate = &date
	}
	return u, nil
}

// Delete archives an income. It has no effect on the balance.
func (s *Service) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) (i *dto.IncomeRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		incomes, err := uow.IncomeRepository()
		if err != nil {
			return err
		}
		current, err := owned(ctx, incomes, userID, id)
		if err != nil {
			return err
		}
		if current.IsArchived {
			i = current
			return nil
		}
		now := ledger.Now()
		inactive, archived := false, true
		if err := incomes.Update(ctx, id, &dto.IncomeUpdate{
			IsActive:   &inactive,
			IsArchived: &archived,
			ArchivedAt: &now,
		}); err != nil {
			return err
		}
		i, err = incomes.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return i, nil
}

// HardDelete erases an income. Entries it produced keep their amounts and
// lose the link.
func (s *Service) HardDelete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		incomes, err := uow.IncomeRepository()
		if err != nil {
			return err
		}
		if _, err := owned(ctx, incomes, userID, id); err != nil {
			return err
		}
		return incomes.Delete(ctx, id)
	})
}

// CreditNow pays an income into the bank. A recurring income moves to its
// next payment date; a one-off income is spent and becomes inactive.
func (s *Service) CreditNow(
	ctx context.Context,
	userID, id uuid.UUID,
) (out *dto.CreditResult, err error) {
	log := s.logger.With("context", "CreditIncome", "userID", userID, "incomeID", id)

	var res *ledger.Result
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		incomes, err := uow.IncomeRepository()
		if err != nil {
			return err
		}
		current, err := owned(ctx, incomes, userID, id)
		if err != nil {
			return err
		}
		if current.IsArchived || !current.IsActive {
			return fmt.Errorf("%w: income is not active", domain.ErrBadRequest)
		}

		res, err = ledger.Post(ctx, uow, ledger.Posting{
			UserID:      userID,
			Type:        domainledger.EntryIncome,
			Amount:      current.Amount,
			Description: domainincome.CreditedDescription(current.Name),
			IncomeID:    &id,
		})
		if err != nil {
			return err
		}

		update := &dto.IncomeUpdate{}
		if current.Frequency == domain.FrequencyOnce {
			inactive := false
			update.IsActive = &inactive
		} else if current.IsRecurring {
			next := current.Frequency.Next(current.NextPaymentDate)
			update.NextPaymentDate = &next
		}
		if err := incomes.Update(ctx, id, update); err != nil {
			return err
		}
		updated, err := incomes.Get(ctx, id)
		if err != nil {
			return err
		}
		out = &dto.CreditResult{Income: updated, Entry: res.Entry, Bank: res.Bank}
		return nil
	})
	if err != nil {
		log.Error("failed to credit income", "error", err)
		return nil, err
	}
	log.Info("income credited", "amount", res.Entry.Amount.StringFixed(2))
	eventbus.EmitAll(ctx, s.bus, log, res.Event())
	return out, nil
}
