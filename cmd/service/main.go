// Command service hosts service controllers behind the Redis RPC transport,
// for deployments where the gateway runs with RPC_TRANSPORT=redis.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/amirasaad/finance/infra/initializer"
	infrarpc "github.com/amirasaad/finance/infra/rpc"
	"github.com/amirasaad/finance/pkg/app"
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/rpc"
	log "github.com/charmbracelet/log"
)

func main() {
	name := flag.String("name", "all", "service to host: all or one of banks, expenses, incomes, users, authentication, budgets, events")
	envFile := flag.String("env", ".env", "environment file")
	flag.Parse()

	if err := run(*name, *envFile); err != nil {
		log.Fatal(err)
	}
}

// servicesFor resolves the -name flag.
func servicesFor(name string) ([]string, error) {
	if name == "all" {
		return rpc.Services, nil
	}
	if !slices.Contains(rpc.Services, name) {
		return nil, fmt.Errorf("unknown service %q", name)
	}
	return []string{name}, nil
}

func run(name, envFile string) error {
	services, err := servicesFor(name)
	if err != nil {
		return err
	}
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	cfg.RPC.Transport = "redis"

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	application, err := app.New(deps, cfg)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps.Logger.Info("Serving", "services", services)
	transport := infrarpc.NewRedis(deps.Redis, cfg.RPC.Timeout, deps.Logger)
	if err := transport.Serve(ctx, application.Server, services...); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
