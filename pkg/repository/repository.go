// Package repository declares the data access contracts used by the
// services. Each sub-package holds one repository interface expressed in
// DTOs from pkg/dto; GORM implementations live in infra/repository.
package repository

import (
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

// Reflected interface types used as registry keys by GetRepository.
var (
	UserRepositoryType    = reflect.TypeOf((*user.Repository)(nil)).Elem()
	AccountRepositoryType = reflect.TypeOf((*account.Repository)(nil)).Elem()
	BankRepositoryType    = reflect.TypeOf((*bank.Repository)(nil)).Elem()
	LedgerRepositoryType  = reflect.TypeOf((*ledger.Repository)(nil)).Elem()
	ExpenseRepositoryType = reflect.TypeOf((*expense.Repository)(nil)).Elem()
	IncomeRepositoryType  = reflect.TypeOf((*income.Repository)(nil)).Elem()
	BudgetRepositoryType  = reflect.TypeOf((*budget.Repository)(nil)).Elem()
	EventRepositoryType   = reflect.TypeOf((*event.Repository)(nil)).Elem()
)
