package repository

import (
	"context"
	"fmt"
	"reflect"

	accountimpl "github.com/amirasaad/finance/infra/repository/account"
	bankimpl "github.com/amirasaad/finance/infra/repository/bank"
	budgetimpl "github.com/amirasaad/finance/infra/repository/budget"
	eventimpl "github.com/amirasaad/finance/infra/repository/event"
	expenseimpl "github.com/amirasaad/finance/infra/repository/expense"
	incomeimpl "github.com/amirasaad/finance/infra/repository/income"
	ledgerimpl "github.com/amirasaad/finance/infra/repository/ledger"
	userimpl "github.com/amirasaad/finance/infra/repository/user"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/amirasaad/finance/pkg/repository/account"
	"github.com/amirasaad/finance/pkg/repository/bank"
	"github.com/amirasaad/finance/pkg/repository/budget"
	"github.com/amirasaad/finance/pkg/repository/event"
	"github.com/amirasaad/finance/pkg/repository/expense"
	"github.com/amirasaad/finance/pkg/repository/income"
	"github.com/amirasaad/finance/pkg/repository/ledger"
	"github.com/amirasaad/finance/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories obtained from the UoW passed to Do share that
// transaction; outside Do they run on the plain connection.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			repository.UserRepositoryType:    func(db *gorm.DB) any { return userimpl.New(db) },
			repository.AccountRepositoryType: func(db *gorm.DB) any { return accountimpl.New(db) },
			repository.BankRepositoryType:    func(db *gorm.DB) any { return bankimpl.New(db) },
			repository.LedgerRepositoryType:  func(db *gorm.DB) any { return ledgerimpl.New(db) },
			repository.ExpenseRepositoryType: func(db *gorm.DB) any { return expenseimpl.New(db) },
			repository.IncomeRepositoryType:  func(db *gorm.DB) any { return incomeimpl.New(db) },
			repository.BudgetRepositoryType:  func(db *gorm.DB) any { return budgetimpl.New(db) },
			repository.EventRepositoryType:   func(db *gorm.DB) any { return eventimpl.New(db) },
		},
	}
}

// Do runs fn in a database transaction and hands it a UoW bound to that
// transaction. Nested calls join the outer transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return toDomainError(fn(txnUow))
	})
}

// GetRepository returns the repository registered for repoType, bound to the
// current session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// UserRepository returns the user repository.
func (u *UoW) UserRepository() (user.Repository, error) {
	return get[user.Repository](u, repository.UserRepositoryType)
}

// AccountRepository returns the account repository.
func (u *UoW) AccountRepository() (account.Repository, error) {
	return get[account.Repository](u, repository.AccountRepositoryType)
}

// BankRepository returns the bank repository.
func (u *UoW) BankRepository() (bank.Repository, error) {
	return get[bank.Repository](u, repository.BankRepositoryType)
}

// LedgerRepository returns the ledger repository.
func (u *UoW) LedgerRepository() (ledger.Repository, error) {
	return get[ledger.Repository](u, repository.LedgerRepositoryType)
}

// ExpenseRepository returns the expense repository.
func (u *UoW) ExpenseRepository() (expense.Repository, error) {
	return get[expense.Repository](u, repository.ExpenseRepositoryType)
}

// IncomeRepository returns the income repository.
func (u *UoW) IncomeRepository() (income.Repository, error) {
	return get[income.Repository](u, repository.IncomeRepositoryType)
}

// BudgetRepository returns the budget repository.
func (u *UoW) BudgetRepository() (budget.Repository, error) {
	return get[budget.Repository](u, repository.BudgetRepositoryType)
}

// EventRepository returns the event repository.
func (u *UoW) EventRepository() (event.Repository, error) {
	return get[event.Repository](u, repository.EventRepositoryType)
}

func get[T any](u *UoW, repoType reflect.Type) (T, error) {
	var zero T
	repoAny, err := u.GetRepository(repoType)
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected repository type for %v", repoType)
	}
	return repo, nil
}

// AutoMigrate creates or updates every table used by the repositories. It is
// meant for tests and local sqlite runs; postgres deployments use the SQL
// migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userimpl.User{},
		&accountimpl.Account{},
		&bankimpl.Bank{},
		&ledgerimpl.Transaction{},
		&expenseimpl.Expense{},
		&incomeimpl.Income{},
		&budgetimpl.Budget{},
		&budgetimpl.Participant{},
		&eventimpl.Event{},
		&eventimpl.Participant{},
	)
}

var _ repository.UnitOfWork = (*UoW)(nil)
