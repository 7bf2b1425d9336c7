package app

import (
	"github.com/amirasaad/finance/pkg/service/auth"
	"github.com/amirasaad/finance/pkg/service/bank"
	"github.com/amirasaad/finance/pkg/service/budget"
	"github.com/amirasaad/finance/pkg/service/event"
	"github.com/amirasaad/finance/pkg/service/expense"
	"github.com/amirasaad/finance/pkg/service/income"
	"github.com/amirasaad/finance/pkg/service/user"
)

func (a *App) registerHandlers() {
	bank.RegisterHandlers(a.Server, a.BankService)
	expense.RegisterHandlers(a.Server, a.ExpenseService)
	income.RegisterHandlers(a.Server, a.IncomeService)
	user.RegisterHandlers(a.Server, a.UserService)
	auth.RegisterHandlers(a.Server, a.AuthService)
	budget.RegisterHandlers(a.Server, a.BudgetService)
	event.RegisterHandlers(a.Server, a.EventService)
}
