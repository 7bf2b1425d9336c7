package ledger

// EntryType classifies a ledger entry by the kind of event that moved the
// balance.
type EntryType string

const (
	EntryIncome           EntryType = "income"
	EntryExpense          EntryType = "expense"
	EntryEvent            EntryType = "event"
	EntryBudgetTransfer   EntryType = "budget_transfer"
	EntryBudgetWithdrawal EntryType = "budget_withdrawal"
	EntryAdjustment       EntryType = "adjustment"
)

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	switch t {
	case EntryIncome, EntryExpense, EntryEvent,
		EntryBudgetTransfer, EntryBudgetWithdrawal, EntryAdjustment:
		return true
	}
	return false
}
