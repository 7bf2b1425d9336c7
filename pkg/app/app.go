package app

import (
	"fmt"
	"log/slog"

	infrarpc "github.com/amirasaad/finance/infra/rpc"
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/eventbus"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/amirasaad/finance/pkg/service/auth"
	"github.com/amirasaad/finance/pkg/service/bank"
	"github.com/amirasaad/finance/pkg/service/budget"
	"github.com/amirasaad/finance/pkg/service/event"
	"github.com/amirasaad/finance/pkg/service/expense"
	"github.com/amirasaad/finance/pkg/service/income"
	"github.com/amirasaad/finance/pkg/service/user"
	"github.com/redis/go-redis/v9"
)

// Deps contains all the dependencies needed to build the services
type Deps struct {
	Uow      repository.UnitOfWork
	EventBus eventbus.Bus
	Tokens   *auth.TokenIssuer
	Redis    *redis.Client
	Logger   *slog.Logger
}

type App struct {
	Deps           *Deps
	Config         *config.App
	Server         *rpc.Server
	Client         *rpc.Client
	AuthService    *auth.Service
	BankService    *bank.Service
	ExpenseService *expense.Service
	IncomeService  *income.Service
	UserService    *user.Service
	BudgetService  *budget.Service
	EventService   *event.Service
}

// New builds every service, registers them on an RPC server and picks the
// client transport named by cfg.RPC.Transport.
func New(deps *Deps, cfg *config.App) (*App, error) {
	app := &App{
		Deps:   deps,
		Config: cfg,
		Server: rpc.NewServer(deps.Logger),
	}
	app.setupEventBus()

	app.AuthService = auth.New(deps.Uow, deps.Tokens, deps.Logger)
	app.BankService = bank.New(deps.Uow, deps.EventBus, deps.Logger)
	app.ExpenseService = expense.New(deps.Uow, deps.EventBus, deps.Logger)
	app.IncomeService = income.New(deps.Uow, deps.EventBus, deps.Logger)
	app.UserService = user.New(deps.Uow, deps.EventBus, deps.Logger)
	app.BudgetService = budget.New(deps.Uow, deps.Logger)
	app.EventService = event.New(deps.Uow, deps.Logger)
	app.registerHandlers()

	transportMap := map[string]func() (rpc.Transport, error){
		"memory": func() (rpc.Transport, error) {
			return infrarpc.NewMemory(app.Server), nil
		},
		"redis": func() (rpc.Transport, error) {
			if deps.Redis == nil {
				return nil, fmt.Errorf("rpc transport redis needs a redis client")
			}
			return infrarpc.NewRedis(deps.Redis, cfg.RPC.Timeout, deps.Logger), nil
		},
	}
	name := "memory"
	if cfg.RPC != nil && cfg.RPC.Transport != "" {
		name = cfg.RPC.Transport
	}
	factory, ok := transportMap[name]
	if !ok {
		return nil, fmt.Errorf("unknown rpc transport %q", name)
	}
	transport, err := factory()
	if err != nil {
		return nil, err
	}
	app.Client = rpc.NewClient(transport)
	return app, nil
}
