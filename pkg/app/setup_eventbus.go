// Package app wires the services, the RPC server and the event bus
// subscribers of the application.
package app

import (
	"context"
	"log/slog"

	"github.com/amirasaad/finance/pkg/domain/events"
)

// setupEventBus registers the audit subscriber for every domain event.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	for eventType := range events.EventTypes {
		bus.Register(eventType, a.audit)
	}
}

func (a *App) audit(_ context.Context, e events.Event) error {
	log := a.Deps.Logger.With("context", "audit", "event", e.Type())
	switch ev := e.(type) {
	case events.LedgerEntryRecorded:
		logEntry(log, &ev)
	case *events.LedgerEntryRecorded:
		logEntry(log, ev)
	case events.BankCurrencyChanged:
		log.Info("bank currency changed", "userID", ev.UserID, "from", ev.From, "to", ev.To)
	case *events.BankCurrencyChanged:
		log.Info("bank currency changed", "userID", ev.UserID, "from", ev.From, "to", ev.To)
	case events.UserErased:
		log.Info("user erased", "userID", ev.UserID)
	case *events.UserErased:
		log.Info("user erased", "userID", ev.UserID)
	default:
		log.Info("event received")
	}
	return nil
}

func logEntry(log *slog.Logger, e *events.LedgerEntryRecorded) {
	log.Info("ledger entry recorded",
		"entryID", e.EntryID,
		"userID", e.UserID,
		"type", e.EntryType,
		"amount", e.Amount.StringFixed(2),
		"balanceAfter", e.BalanceAfter.StringFixed(2),
	)
}
