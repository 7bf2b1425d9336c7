// Package expense provides business logic for expenses. Creating, updating,
// archiving and erasing an expense each post the user's share to the ledger
// in the same transaction as the row change.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/amirasaad/finance/pkg/domain"
	domainexpense "github.com/amirasaad/finance/pkg/domain/expense"
	domainledger "github.com/amirasaad/finance/pkg/domain/ledger"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/eventbus"
	"github.com/amirasaad/finance/pkg/ledger"
	"github.com/amirasaad/finance/pkg/repository"
	expenserepo "github.com/amirasaad/finance/pkg/repository/expense"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// Service provides expense operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a new expense Service.
func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, bus: bus, logger: logger}
}

// Create inserts an expense and debits the user's share.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in dto.CreateExpenseRequest,
) (e *dto.ExpenseRead, err error) {
	log := s.logger.With("context", "CreateExpense", "userID", userID)
	if err = domainexpense.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	if in.SplitPercentages != nil {
		if err = ledger.ValidateSplit(in.SplitPercentages); err != nil {
			return nil, err
		}
	}
	freq, err := domain.ParseFrequency(in.Frequency, domain.FrequencyOnce)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrBadRequest)
	}

	amount := in.Amount.Round(2)
	id := uuid.New()
	var res *ledger.Result
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		expenses, err := uow.ExpenseRepository()
		if err != nil {
			return err
		}
		if err := expenses.Create(ctx, &dto.ExpenseCreate{
			ID:               id,
			UserID:           userID,
			Name:             name,
			Icon:             in.Icon,
			Category:         strings.TrimSpace(in.Category),
			Description:      in.Description,
			Amount:           amount,
			Frequency:        freq,
			IsRecurring:      in.IsRecurring,
			NextPaymentDate:  in.NextPaymentDate,
			SplitPercentages: in.SplitPercentages,
		}); err != nil {
			return err
		}

		share := ledger.UserShare(amount, in.SplitPercentages)
		res, err = ledger.Post(ctx, uow, ledger.Posting{
			UserID: userID,
			Type:   domainledger.EntryExpense,
			Amount: share.Neg(),
			Description: domainexpense.CreatedDescription(
				name, amount, ledger.UserPercentage(in.SplitPercentages), len(in.SplitPercentages) > 0,
			),
			ExpenseID: &id,
		})
		if err != nil {
			return err
		}
		e, err = expenses.Get(ctx, id)
		return err
	})
	if err != nil {
		log.Error("failed to create expense", "error", err)
		return nil, err
	}
	log.Info("expense created", "expenseID", id, "balance", res.Bank.Balance.StringFixed(2))
	eventbus.EmitAll(ctx, s.bus, log, res.Event())
	return e, nil
}

// FindAll returns one page of the user's expenses.
func (s *Service) FindAll(
	ctx context.Context,
	userID uuid.UUID,
	q dto.ExpenseQuery,
) (*dto.ExpenseList, error) {
	filter, err := filterFromQuery(q)
	if err != nil {
		return nil, err
	}
	expenses, err := s.uow.ExpenseRepository()
	if err != nil {
		return nil, err
	}
	items, total, err := expenses.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*dto.ExpenseRead{}
	}
	return &dto.ExpenseList{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func filterFromQuery(q dto.ExpenseQuery) (dto.ExpenseFilter, error) {
	f := dto.ExpenseFilter{
		Page:            q.Page,
		Limit:           q.Limit,
		Category:        strings.TrimSpace(q.Category),
		StartDate:       q.StartDate,
		EndDate:         q.EndDate,
		IncludeArchived: q.IncludeArchived,
	}
	if f.Page < 1 {
		f.Page = defaultPage
	}
	switch {
	case f.Limit < 1:
		f.Limit = defaultLimit
	case f.Limit > maxLimit:
		f.Limit = maxLimit
	}
	freq, err := domain.ParseFrequency(q.Frequency, "")
	if err != nil {
		return f, err
	}
	f.Frequency = freq
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return f, fmt.Errorf("%w: endDate is before startDate", domain.ErrBadRequest)
	}
	return f, nil
}

// FindOne returns an expense of the user. Expenses of other users are
// reported as missing.
func (s *Service) FindOne(
	ctx context.Context,
	userID, id uuid.UUID,
) (*dto.ExpenseRead, error) {
	expenses, err := s.uow.ExpenseRepository()
	if err != nil {
		return nil, err
	}
	return owned(ctx, expenses, userID, id)
}

func owned(
	ctx context.Context,
	expenses expenserepo.Repository,
	userID, id uuid.UUID,
) (*dto.ExpenseRead, error) {
	e, err := expenses.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || e.UserID != userID {
		return nil, fmt.Errorf("%w: expense not found", domain.ErrNotFound)
	}
	return e, nil
}

// Update applies a partial change. When the user's share changes on an
// expense still counted in the balance, the difference is posted.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in dto.UpdateExpenseRequest,
) (e *dto.ExpenseRead, err error) {
	log := s.logger.With("context", "UpdateExpense", "userID", userID, "expenseID", id)
	update, err := updateFromRequest(in)
	if err != nil {
		return nil, err
	}

	var res *ledger.Result
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		expenses, err := uow.ExpenseRepository()
		if err != nil {
			return err
		}
		before, err := owned(ctx, expenses, userID, id)
		if err != nil {
			return err
		}
		if err := expenses.Update(ctx, id, update); err != nil {
			return err
		}
		e, err = expenses.Get(ctx, id)
		if err != nil {
			return err
		}

		diff, ok := ledger.ExpenseAdjustment(before, e)
		if !ok {
			return nil
		}
		res, err = ledger.Post(ctx, uow, ledger.Posting{
			UserID:      userID,
			Type:        domainledger.EntryExpense,
			Amount:      diff,
			Description: domainexpense.AdjustedDescription(e.Name, diff),
			ExpenseID:   &id,
		})
		return err
	})
	if err != nil {
		log.Error("failed to update expense", "error", err)
		return nil, err
	}
	if res != nil {
		log.Info("expense share adjusted", "amount", res.Entry.Amount.StringFixed(2))
		eventbus.EmitAll(ctx, s.bus, log, res.Event())
	}
	return e, nil
}

func updateFromRequest(in dto.UpdateExpenseRequest) (*dto.ExpenseUpdate, error) {
	u := &dto.ExpenseUpdate{
		Icon:            in.Icon,
		Description:     in.Description,
		IsRecurring:     in.IsRecurring,
		NextPaymentDate: in.NextPaymentDate,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrBadRequest)
		}
		u.Name = &name
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		u.Category = &category
	}
	if in.Amount != nil {
		if err := domainexpense.ValidateAmount(*in.Amount); err != nil {
			return nil, err
		}
		amount := in.Amount.Round(2)
		u.Amount = &amount
	}
	if in.Frequency != nil {
		freq, err := domain.ParseFrequency(*in.Frequency, domain.FrequencyOnce)
		if err != nil {
			return nil, err
		}
		u.Frequency = &freq
	}
	if in.SplitPercentages != nil {
		split := *in.SplitPercentages
		if err := ledger.ValidateSplit(split); err != nil {
			return nil, err
		}
		u.SplitPercentages = &split
	}
	return u, nil
}

// Delete archives an expense and credits back the user's share. Archiving
// an archived expense changes nothing.
func (s *Service) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) (e *dto.ExpenseRead, err error) {
	log := s.logger.With("context", "ArchiveExpense", "userID", userID, "expenseID", id)

	var res *ledger.Result
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		expenses, err := uow.ExpenseRepository()
		if err != nil {
			return err
		}
		current, err := owned(ctx, expenses, userID, id)
		if err != nil {
			return err
		}
		if current.IsArchived {
			e = current
			return nil
		}

		credit, owed := ledger.ExpenseReversal(current)
		now := ledger.Now()
		inactive, archived, reversed := false, true, true
		if err := expenses.Update(ctx, id, &dto.ExpenseUpdate{
			IsActive:   &inactive,
			IsArchived: &archived,
			Reversed:   &reversed,
			ArchivedAt: &now,
		}); err != nil {
			return err
		}
		if owed {
			res, err = ledger.Post(ctx, uow, ledger.Posting{
				UserID:      userID,
				Type:        domainledger.EntryExpense,
				Amount:      credit,
				Description: domainexpense.ArchivedDescription(current.Name),
				ExpenseID:   &id,
			})
			if err != nil {
				return err
			}
		}
		e, err = expenses.Get(ctx, id)
		return err
	})
	if err != nil {
		log.Error("failed to archive expense", "error", err)
		return nil, err
	}
	if res != nil {
		log.Info("expense archived", "credit", res.Entry.Amount.StringFixed(2))
		eventbus.EmitAll(ctx, s.bus, log, res.Event())
	}
	return e, nil
}

// HardDelete erases an expense. The share is credited back unless an
// archive already did so. The credit entry is not linked to the expense,
// which no longer exists.
func (s *Service) HardDelete(
	ctx context.Context,
	userID, id uuid.UUID,
) (err error) {
	log := s.logger.With("context", "EraseExpense", "userID", userID, "expenseID", id)

	var res *ledger.Result
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		expenses, err := uow.ExpenseRepository()
		if err != nil {
			return err
		}
		current, err := owned(ctx, expenses, userID, id)
		if err != nil {
			return err
		}
		if err := expenses.Delete(ctx, id); err != nil {
			return err
		}
		credit, owed := ledger.ExpenseErasure(current)
		if !owed {
			return nil
		}
		res, err = ledger.Post(ctx, uow, ledger.Posting{
			UserID:      userID,
			Type:        domainledger.EntryExpense,
			Amount:      credit,
			Description: domainexpense.ErasedDescription(current.Name),
		})
		return err
	})
	if err != nil {
		log.Error("failed to erase expense", "error", err)
		return err
	}
	log.Info("expense erased", "credited", res != nil)
	if res != nil {
		eventbus.EmitAll(ctx, s.bus, log, res.Event())
	}
	return nil
}

// GetStatistics summarises the user's expenses.
func (s *Service) GetStatistics(
	ctx context.Context,
	userID uuid.UUID,
) (*dto.ExpenseStatistics, error) {
	expenses, err := s.uow.ExpenseRepository()
	if err != nil {
		return nil, err
	}
	all, err := expenses.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return statistics(all), nil
}

func statistics(all []*dto.ExpenseRead) *dto.ExpenseStatistics {
	stats := &dto.ExpenseStatistics{
		TotalAmount:     decimal.Zero,
		TotalUserShare:  decimal.Zero,
		MonthlyEstimate: decimal.Zero,
		ByCategory:      []dto.CategoryTotal{},
	}
	byCategory := map[string]*dto.CategoryTotal{}
	for _, e := range all {
		if e.IsArchived || !e.IsActive {
			if e.IsArchived {
				stats.ArchivedCount++
			}
			continue
		}
		stats.ActiveCount++
		share := ledger.UserShare(e.Amount, e.SplitPercentages)
		stats.TotalAmount = stats.TotalAmount.Add(e.Amount)
		stats.TotalUserShare = stats.TotalUserShare.Add(share)
		if e.IsRecurring {
			stats.MonthlyEstimate = stats.MonthlyEstimate.Add(share.Mul(e.Frequency.MonthlyFactor()))
		}

		name := domainexpense.NormalizeCategory(e.Category)
		c, ok := byCategory[name]
		if !ok {
			c = &dto.CategoryTotal{Category: name, Total: decimal.Zero}
			byCategory[name] = c
		}
		c.Count++
		c.Total = c.Total.Add(e.Amount)
	}
	for _, c := range byCategory {
		stats.ByCategory = append(stats.ByCategory, *c)
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool {
		a, b := stats.ByCategory[i], stats.ByCategory[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Category < b.Category
	})
	stats.MonthlyEstimate = stats.MonthlyEstimate.Round(2)
	return stats
}
