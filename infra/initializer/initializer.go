// Package initializer builds the process-wide dependencies from
// configuration.
package initializer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/finance/infra"
	infra_eventbus "github.com/amirasaad/finance/infra/eventbus"
	infra_repository "github.com/amirasaad/finance/infra/repository"
	"github.com/amirasaad/finance/pkg/app"
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/eventbus"
	"github.com/amirasaad/finance/pkg/service/auth"
	"github.com/redis/go-redis/v9"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	deps.Tokens, err = auth.NewTokenIssuer(cfg.Auth.Jwt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	// Initialize database
	db, err := infra.OpenPostgres(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err = infra.Migrate(db); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			return nil, err
		}
	}

	// Initialize unit of work
	deps.Uow = infra_repository.NewUoW(db)

	if needsRedis(cfg) {
		deps.Redis, err = newRedisClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
	}

	deps.EventBus, err = initEventBus(cfg, deps.Redis, logger)
	if err != nil {
		return nil, err
	}
	return
}

// needsRedis reports whether the RPC transport runs over Redis. The event
// bus opens its own connection when it is the only Redis user.
func needsRedis(cfg *config.App) bool {
	return cfg.RPC != nil && cfg.RPC.Transport == "redis"
}

func newRedisClient(cfg *config.Redis) (*redis.Client, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("redis: url is required")
	}
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opt.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opt.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opt.WriteTimeout = cfg.WriteTimeout
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: connection failed: %w", err)
	}
	return client, nil
}

// initEventBus picks the bus named by cfg.EventBus.Driver. A broker that
// cannot be reached falls back to the memory bus so the API stays up; events
// are only audited.
func initEventBus(cfg *config.App, client *redis.Client, logger *slog.Logger) (eventbus.Bus, error) {
	driver := ""
	group := ""
	if cfg.EventBus != nil {
		driver = cfg.EventBus.Driver
		group = cfg.EventBus.Group
	}
	switch driver {
	case "", "memory":
		return infra_eventbus.NewWithMemory(logger), nil
	case "redis":
		if client != nil {
			return infra_eventbus.NewWithRedisClient(client, group, logger), nil
		}
		if cfg.Redis == nil || cfg.Redis.URL == "" {
			return nil, fmt.Errorf("event bus redis: REDIS_URL is required")
		}
		bus, err := infra_eventbus.NewWithRedis(cfg.Redis.URL, group, logger)
		if err != nil {
			logger.Warn("Redis event bus unavailable, using memory", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil
		}
		return bus, nil
	case "kafka":
		if cfg.Kafka == nil || cfg.Kafka.Brokers == "" {
			return nil, fmt.Errorf("event bus kafka: KAFKA_BROKERS is required")
		}
		bus, err := infra_eventbus.NewWithKafka(cfg.Kafka.Brokers, logger, &infra_eventbus.KafkaEventBusConfig{
			GroupID:     cfg.Kafka.GroupID,
			TopicPrefix: cfg.Kafka.TopicPrefix,
		})
		if err != nil {
			logger.Warn("Kafka event bus unavailable, using memory", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil
		}
		return bus, nil
	default:
		return nil, fmt.Errorf("unknown event bus driver %q", driver)
	}
}
