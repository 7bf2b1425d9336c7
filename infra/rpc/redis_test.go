package rpc

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7.0.5",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedis_RequestReply(t *testing.T) {
	client := setupRedis(t)
	srv := rpc.NewServer(slog.Default())
	srv.Register(rpc.ServiceUsers, rpc.FindOne, func(_ context.Context, req *rpc.Request) (any, error) {
		if req.ID == "missing" {
			return nil, domain.ErrNotFound
		}
		return map[string]string{"id": req.ID}, nil
	})

	transport := NewRedis(client, 5*time.Second, slog.Default())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = transport.Serve(ctx, srv, rpc.ServiceUsers)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	c := rpc.NewClient(transport)
	out, err := rpc.Call[map[string]string](context.Background(), c, rpc.ServiceUsers, rpc.FindOne, uuid.New(), nil, rpc.WithID("u1"))
	require.NoError(t, err)
	assert.Equal(t, "u1", out["id"])

	_, err = rpc.Call[map[string]string](context.Background(), c, rpc.ServiceUsers, rpc.FindOne, uuid.New(), nil, rpc.WithID("missing"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedis_TimesOutWithoutServer(t *testing.T) {
	client := setupRedis(t)
	c := rpc.NewClient(NewRedis(client, 500*time.Millisecond, slog.Default()))
	_, err := rpc.Call[struct{}](context.Background(), c, rpc.ServiceBanks, rpc.GetBank, uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrInternal)
}
