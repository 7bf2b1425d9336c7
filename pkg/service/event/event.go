// Package event manages shared events, optionally attached to a budget,
// and the share each participant owes.
package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/finance/pkg/domain"
	domainbank "github.com/amirasaad/finance/pkg/domain/bank"
	domainevent "github.com/amirasaad/finance/pkg/domain/event"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/ledger"
	"github.com/amirasaad/finance/pkg/repository"
	eventrepo "github.com/amirasaad/finance/pkg/repository/event"
	budgetsvc "github.com/amirasaad/finance/pkg/service/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Service provides event operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new event Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

func owned(
	ctx context.Context,
	evts eventrepo.Repository,
	userID, id uuid.UUID,
) (*dto.EventRead, error) {
	e, err := evts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: event not found", domain.ErrNotFound)
	}
	if e.CreatorID != userID {
		return nil, fmt.Errorf("%w: event belongs to another user", domain.ErrForbidden)
	}
	return e, nil
}

func validTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return fmt.Errorf("%w: total amount must not be negative", domain.ErrBadRequest)
	}
	return nil
}

// Create stores an event. A linked budget must belong to the caller.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in dto.CreateEventRequest,
) (e *dto.EventRead, err error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrBadRequest)
	}
	if err = validTotal(in.TotalAmount); err != nil {
		return nil, err
	}
	status, err := domainevent.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = domainbank.DefaultCurrency
	}
	if err = domainbank.ValidateCurrency(currency); err != nil {
		return nil, err
	}
	if in.EventDate.IsZero() {
		return nil, fmt.Errorf("%w: event date is required", domain.ErrBadRequest)
	}

	id := uuid.New()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if in.BudgetID != nil {
			budgets, err := uow.BudgetRepository()
			if err != nil {
				return err
			}
			if _, err := budgetsvc.Owned(ctx, budgets, userID, *in.BudgetID); err != nil {
				return err
			}
		}
		evts, err := uow.EventRepository()
		if err != nil {
			return err
		}
		if err := evts.Create(ctx, &dto.EventCreate{
			ID:          id,
			CreatorID:   userID,
			BudgetID:    in.BudgetID,
			Name:        name,
			Icon:        in.Icon,
			Description: in.Description,
			TotalAmount: in.TotalAmount.Round(2),
			Currency:    currency,
			EventDate:   in.EventDate.UTC(),
			Status:      status,
		}); err != nil {
			return err
		}
		e, err = evts.Get(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Error("failed to create event", "userID", userID, "error", err)
		return nil, err
	}
	return e, nil
}

func (s *Service) FindAll(ctx context.Context, userID uuid.UUID) ([]*dto.EventRead, error) {
	evts, err := s.uow.EventRepository()
	if err != nil {
		return nil, err
	}
	return evts.ListByCreator(ctx, userID)
}

func (s *Service) FindOne(ctx context.Context, userID, id uuid.UUID) (*dto.EventRead, error) {
	evts, err := s.uow.EventRepository()
	if err != nil {
		return nil, err
	}
	return owned(ctx, evts, userID, id)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in dto.UpdateEventRequest,
) (e *dto.EventRead, err error) {
	update := &dto.EventUpdate{
		Icon:        in.Icon,
		Description: in.Description,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrBadRequest)
		}
		update.Name = &name
	}
	if in.TotalAmount != nil {
		if err = validTotal(*in.TotalAmount); err != nil {
			return nil, err
		}
		total := in.TotalAmount.Round(2)
		update.TotalAmount = &total
	}
	if in.EventDate != nil {
		date := in.EventDate.UTC()
		update.EventDate = &date
	}
	if in.Status != nil {
		status, err := domainevent.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		update.Status = &status
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		evts, err := uow.EventRepository()
		if err != nil {
			return err
		}
		if _, err := owned(ctx, evts, userID, id); err != nil {
			return err
		}
		if err := evts.Update(ctx, id, update); err != nil {
			return err
		}
		e, err = evts.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Delete archives the event.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) (e *dto.EventRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		evts, err := uow.EventRepository()
		if err != nil {
			return err
		}
		current, err := owned(ctx, evts, userID, id)
		if err != nil {
			return err
		}
		if current.IsArchived {
			e = current
			return nil
		}
		now := ledger.Now()
		archived := true
		if err := evts.Update(ctx, id, &dto.EventUpdate{IsArchived: &archived, ArchivedAt: &now}); err != nil {
			return err
		}
		e, err = evts.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// AddParticipant adds a share of the event. Shares may not add up to more
// than 100%.
func (s *Service) AddParticipant(
	ctx context.Context,
	userID, id uuid.UUID,
	in dto.AddEventParticipantRequest,
) (e *dto.EventRead, err error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: participant name is required", domain.ErrBadRequest)
	}
	if err = domainevent.ValidatePercentage(in.Percentage); err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		evts, err := uow.EventRepository()
		if err != nil {
			return err
		}
		current, err := owned(ctx, evts, userID, id)
		if err != nil {
			return err
		}
		if current.IsArchived {
			return fmt.Errorf("%w: event is archived", domain.ErrBadRequest)
		}
		total := in.Percentage
		for _, p := range current.Participants {
			total = total.Add(p.Percentage)
		}
		if total.GreaterThan(hundred) {
			return fmt.Errorf("%w: participant shares exceed 100%%", domain.ErrBadRequest)
		}
		if err := evts.AddParticipant(ctx, &dto.EventParticipantCreate{
			ID:         uuid.New(),
			EventID:    id,
			UserID:     in.UserID,
			Name:       name,
			Percentage: in.Percentage.Round(2),
		}); err != nil {
			return err
		}
		e, err = evts.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// RemoveParticipant deletes a participant row.
func (s *Service) RemoveParticipant(
	ctx context.Context,
	userID, id, participantID uuid.UUID,
) (e *dto.EventRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		evts, err := uow.EventRepository()
		if err != nil {
			return err
		}
		if _, err := owned(ctx, evts, userID, id); err != nil {
			return err
		}
		p, err := evts.GetParticipant(ctx, participantID)
		if err != nil {
			return err
		}
		if p == nil || p.EventID != id {
			return fmt.Errorf("%w: participant not found", domain.ErrNotFound)
		}
		if err := evts.RemoveParticipant(ctx, participantID); err != nil {
			return err
		}
		e, err = evts.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}
