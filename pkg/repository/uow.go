package repository

import (
	"context"
	"reflect"

	"github.com/amirasaad/finance/pkg/repository/account"
	"github.com/amirasaad/finance/pkg/repository/bank"
	"github.com/amirasaad/finance/pkg/repository/budget"
	"github.com/amirasaad/finance/pkg/repository/event"
	"github.com/amirasaad/finance/pkg/repository/expense"
	"github.com/amirasaad/finance/pkg/repository/income"
	"github.com/amirasaad/finance/pkg/repository/ledger"
	"github.com/amirasaad/finance/pkg/repository/user"
)

// UnitOfWork defines the contract for transactional work and type-safe
// repository access. Every repository handed out inside Do shares the same
// database transaction, so a balance update and its ledger entry commit or
// roll back together.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an error
	// the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type,
	// bound to the current transaction.
	GetRepository(repoType reflect.Type) (any, error)

	UserRepository() (user.Repository, error)
	AccountRepository() (account.Repository, error)
	BankRepository() (bank.Repository, error)
	LedgerRepository() (ledger.Repository, error)
	ExpenseRepository() (expense.Repository, error)
	IncomeRepository() (income.Repository, error)
	BudgetRepository() (budget.Repository, error)
	EventRepository() (event.Repository, error)
}
