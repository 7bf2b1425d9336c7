// Package bank serves the virtual balance of each user. Every change to the
// amount goes through the ledger so the history always explains the balance.
package bank

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/finance/pkg/domain"
	domainbank "github.com/amirasaad/finance/pkg/domain/bank"
	"github.com/amirasaad/finance/pkg/domain/events"
	domainledger "github.com/amirasaad/finance/pkg/domain/ledger"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/eventbus"
	"github.com/amirasaad/finance/pkg/ledger"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides balance operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a new bank Service.
func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, bus: bus, logger: logger}
}

// GetBank returns the bank of userID.
func (s *Service) GetBank(
	ctx context.Context,
	userID uuid.UUID,
) (b *dto.BankRead, err error) {
	banks, err := s.uow.BankRepository()
	if err != nil {
		return nil, err
	}
	b, err = banks.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: bank not found", domain.ErrNotFound)
	}
	return b, nil
}

// AddBalance credits amount as a manual adjustment.
func (s *Service) AddBalance(
	ctx context.Context,
	userID uuid.UUID,
	change dto.BalanceChange,
) (*dto.BankRead, error) {
	return s.adjust(ctx, userID, change, true)
}

// SubtractBalance debits amount as a manual adjustment. The balance may go
// negative.
func (s *Service) SubtractBalance(
	ctx context.Context,
	userID uuid.UUID,
	change dto.BalanceChange,
) (*dto.BankRead, error) {
	return s.adjust(ctx, userID, change, false)
}

func (s *Service) adjust(
	ctx context.Context,
	userID uuid.UUID,
	change dto.BalanceChange,
	credit bool,
) (b *dto.BankRead, err error) {
	log := s.logger.With("context", "AdjustBalance", "userID", userID, "credit", credit)
	if err = domainbank.ValidateAmount(change.Amount); err != nil {
		return nil, err
	}

	var res *ledger.Result
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		current, err := banks.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: bank not found", domain.ErrNotFound)
		}

		amount := change.Amount.Round(2)
		desc := change.Description
		delta := amount
		if credit {
			if desc == "" {
				desc = domainbank.DepositDescription(amount, current.Currency)
			}
		} else {
			delta = amount.Neg()
			if desc == "" {
				desc = domainbank.WithdrawalDescription(amount, current.Currency)
			}
		}

		res, err = ledger.Post(ctx, uow, ledger.Posting{
			UserID:      userID,
			Type:        domainledger.EntryAdjustment,
			Amount:      delta,
			Description: desc,
		})
		return err
	})
	if err != nil {
		log.Error("balance adjustment failed", "error", err)
		return nil, err
	}
	log.Info("balance adjusted", "balance", res.Bank.Balance.StringFixed(2))
	eventbus.EmitAll(ctx, s.bus, log, res.Event())
	return res.Bank, nil
}

// UpdateCurrency relabels the balance. The amount is not converted and no
// ledger entry is written.
func (s *Service) UpdateCurrency(
	ctx context.Context,
	userID uuid.UUID,
	change dto.CurrencyChange,
) (b *dto.BankRead, err error) {
	log := s.logger.With("context", "UpdateCurrency", "userID", userID)
	if err = domainbank.ValidateCurrency(change.Currency); err != nil {
		return nil, err
	}

	var previous string
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		b, err = banks.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("%w: bank not found", domain.ErrNotFound)
		}
		previous = b.Currency
		now := ledger.Now()
		if err := banks.UpdateCurrency(ctx, b.ID, change.Currency, now); err != nil {
			return err
		}
		b.Currency = change.Currency
		b.LastUpdatedAt = now
		return nil
	})
	if err != nil {
		log.Error("currency update failed", "error", err)
		return nil, err
	}
	eventbus.EmitAll(ctx, s.bus, log, events.BankCurrencyChanged{
		UserID:     userID,
		BankID:     b.ID,
		From:       previous,
		To:         b.Currency,
		OccurredAt: b.LastUpdatedAt,
	})
	return b, nil
}

// Open creates the bank of a new user inside the caller's transaction.
func Open(ctx context.Context, uow repository.UnitOfWork, userID uuid.UUID) error {
	banks, err := uow.BankRepository()
	if err != nil {
		return err
	}
	return banks.Create(ctx, &dto.BankCreate{
		ID:       uuid.New(),
		UserID:   userID,
		Balance:  decimal.Zero,
		Currency: domainbank.DefaultCurrency,
	})
}
