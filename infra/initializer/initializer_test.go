package initializer

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	infra_eventbus "github.com/amirasaad/finance/infra/eventbus"
	"github.com/amirasaad/finance/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitEventBus_DefaultsToMemory(t *testing.T) {
	for _, driver := range []string{"", "memory"} {
		bus, err := initEventBus(&config.App{EventBus: &config.EventBus{Driver: driver}}, nil, discard())
		require.NoError(t, err)
		assert.IsType(t, &infra_eventbus.MemoryEventBus{}, bus)
	}
	bus, err := initEventBus(&config.App{}, nil, discard())
	require.NoError(t, err)
	assert.IsType(t, &infra_eventbus.MemoryEventBus{}, bus)
}

func TestInitEventBus_ExplicitRedisRequiresURL(t *testing.T) {
	cfg := &config.App{
		Redis:    &config.Redis{URL: ""},
		EventBus: &config.EventBus{Driver: "redis"},
	}
	_, err := initEventBus(cfg, nil, discard())
	require.Error(t, err)
}

func TestInitEventBus_RedisConnectionErrorFallsBackToMemory(t *testing.T) {
	cfg := &config.App{
		Redis:    &config.Redis{URL: "redis://127.0.0.1:1"},
		EventBus: &config.EventBus{Driver: "redis"},
	}
	bus, err := initEventBus(cfg, nil, discard())
	require.NoError(t, err)
	assert.IsType(t, &infra_eventbus.MemoryEventBus{}, bus)
}

func TestInitEventBus_ExplicitKafkaRequiresBrokers(t *testing.T) {
	cfg := &config.App{
		Kafka:    &config.Kafka{Brokers: ""},
		EventBus: &config.EventBus{Driver: "kafka"},
	}
	_, err := initEventBus(cfg, nil, discard())
	require.Error(t, err)
}

func TestInitEventBus_KafkaConnectionErrorFallsBackToMemory(t *testing.T) {
	cfg := &config.App{
		Kafka:    &config.Kafka{Brokers: "127.0.0.1:1"},
		EventBus: &config.EventBus{Driver: "kafka"},
	}
	bus, err := initEventBus(cfg, nil, discard())
	require.NoError(t, err)
	assert.IsType(t, &infra_eventbus.MemoryEventBus{}, bus)
}

func TestInitEventBus_UnknownDriver(t *testing.T) {
	_, err := initEventBus(&config.App{EventBus: &config.EventBus{Driver: "pigeon"}}, nil, discard())
	assert.Error(t, err)
}

func TestNeedsRedis(t *testing.T) {
	assert.False(t, needsRedis(&config.App{}))
	assert.False(t, needsRedis(&config.App{RPC: &config.RPC{Transport: "memory"}}))
	assert.True(t, needsRedis(&config.App{RPC: &config.RPC{Transport: "redis"}}))
}

func TestNewRedisClient_Errors(t *testing.T) {
	_, err := newRedisClient(nil)
	assert.Error(t, err)
	_, err = newRedisClient(&config.Redis{URL: "not a url"})
	assert.Error(t, err)
}

func TestNewLogger_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var out bytes.Buffer
	logger := newLogger(&out, &config.Log{Format: "json", Prefix: "[finance]"})
	logger.Info("ledger entry recorded", "amount", "12.50")
	assert.Contains(t, out.String(), `"amount":"12.50"`)
	assert.Contains(t, out.String(), "ledger entry recorded")
}
