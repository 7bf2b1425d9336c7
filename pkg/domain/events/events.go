// Package events declares the domain events emitted after a committed
// balance or account change.
package events

import (
	"time"

	"github.com/amirasaad/finance/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventType names an event on the bus.
type EventType string

func (t EventType) String() string { return string(t) }

const (
	EventTypeLedgerEntryRecorded EventType = "ledger.entry_recorded"
	EventTypeBankCurrencyChanged EventType = "bank.currency_changed"
	EventTypeUserErased          EventType = "user.erased"
)

// Event is implemented by every domain event.
type Event interface {
	Type() string
}

// LedgerEntryRecorded follows every committed balance mutation.
type LedgerEntryRecorded struct {
	EntryID      uuid.UUID        `json:"entryId"`
	UserID       uuid.UUID        `json:"userId"`
	EntryType    ledger.EntryType `json:"entryType"`
	Amount       decimal.Decimal  `json:"amount"`
	BalanceAfter decimal.Decimal  `json:"balanceAfter"`
	Description  string           `json:"description"`
	OccurredAt   time.Time        `json:"occurredAt"`
}

func (LedgerEntryRecorded) Type() string { return EventTypeLedgerEntryRecorded.String() }

// BankCurrencyChanged records a relabelling of the balance currency. The
// amount is not converted.
type BankCurrencyChanged struct {
	UserID     uuid.UUID `json:"userId"`
	BankID     uuid.UUID `json:"bankId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (BankCurrencyChanged) Type() string { return EventTypeBankCurrencyChanged.String() }

// UserErased follows the permanent deletion of a user and all of their data.
type UserErased struct {
	UserID     uuid.UUID `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (UserErased) Type() string { return EventTypeUserErased.String() }

// EventTypes maps event names to constructors, for decoding events read back
// from an external broker.
var EventTypes = map[EventType]func() Event{
	EventTypeLedgerEntryRecorded: func() Event { return &LedgerEntryRecorded{} },
	EventTypeBankCurrencyChanged: func() Event { return &BankCurrencyChanged{} },
	EventTypeUserErased:          func() Event { return &UserErased{} },
}
