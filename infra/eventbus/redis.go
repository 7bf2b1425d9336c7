package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/finance/pkg/domain/events"
	"github.com/amirasaad/finance/pkg/eventbus"
	"github.com/redis/go-redis/v9"
)

// RedisEventBus publishes events to one Redis stream per event type and
// consumes them through a consumer group.
type RedisEventBus struct {
	client *redis.Client
	group  string
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithRedis connects to url and returns a stream backed bus. Consumers
// sharing group split the stream between them.
func NewWithRedis(url, group string, logger *slog.Logger) (*RedisEventBus, error) {
	if url == "" {
		return nil, fmt.Errorf("redis event bus: url is required")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis event bus: invalid URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis event bus: connection failed: %w", err)
	}
	return NewWithRedisClient(client, group, logger), nil
}

// NewWithRedisClient wraps an existing client.
func NewWithRedisClient(client *redis.Client, group string, logger *slog.Logger) *RedisEventBus {
	if group == "" {
		group = "finance"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client: client,
		group:  group,
		logger: logger.With("bus", "redis"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Emit appends the event to its stream.
func (b *RedisEventBus) Emit(ctx context.Context, event events.Event) error {
	envBytes, err := encode(event)
	if err != nil {
		return fmt.Errorf("redis event bus: %w", err)
	}
	stream := nameFor("events", events.EventType(event.Type()))
	if err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"event": string(envBytes)},
	}).Err(); err != nil {
		b.logger.Error("failed to emit event", "error", err, "type", event.Type())
		return fmt.Errorf("redis event bus: emit failed: %w", err)
	}
	return nil
}

// Register starts a consumer for eventType. Messages whose handler fails are
// copied to the dead letter stream and acknowledged.
func (b *RedisEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	stream := nameFor("events", eventType)
	consumer := fmt.Sprintf("%s-%d", nameFor("consumer", eventType), time.Now().UnixNano())
	if err := b.client.XGroupCreateMkStream(b.ctx, stream, b.group, "0").Err(); err != nil &&
		!strings.HasPrefix(err.Error(), "BUSYGROUP") {
		b.logger.Error("failed to create consumer group", "error", err, "stream", stream)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for b.ctx.Err() == nil {
			res, err := b.client.XReadGroup(b.ctx, &redis.XReadGroupArgs{
				Group:    b.group,
				Consumer: consumer,
				Streams:  []string{stream, ">"},
				Count:    10,
				Block:    2 * time.Second,
			}).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && b.ctx.Err() == nil {
					b.logger.Error("error reading from stream", "error", err, "stream", stream)
					time.Sleep(time.Second)
				}
				continue
			}
			for _, s := range res {
				for _, msg := range s.Messages {
					b.handle(eventType, stream, msg, handler)
				}
			}
		}
	}()
}

func (b *RedisEventBus) handle(eventType events.EventType, stream string, msg redis.XMessage, handler eventbus.HandlerFunc) {
	defer func() {
		if err := b.client.XAck(b.ctx, stream, b.group, msg.ID).Err(); err != nil {
			b.logger.Error("failed to acknowledge message", "error", err, "msg_id", msg.ID)
		}
	}()

	raw, ok := msg.Values["event"].(string)
	if !ok {
		b.pushToDLQ(eventType, msg.Values)
		return
	}
	evt, err := decode([]byte(raw))
	if err != nil {
		b.logger.Error("failed to decode event", "error", err, "msg_id", msg.ID)
		b.pushToDLQ(eventType, msg.Values)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panic recovered", "panic", r, "event_type", eventType)
			b.pushToDLQ(eventType, msg.Values)
		}
	}()
	if err := handler(b.ctx, evt); err != nil {
		b.logger.Error("handler error", "error", err, "event_type", eventType)
		b.pushToDLQ(eventType, msg.Values)
	}
}

func (b *RedisEventBus) pushToDLQ(eventType events.EventType, values map[string]any) {
	dlq := nameFor("dlq", eventType)
	if err := b.client.XAdd(b.ctx, &redis.XAddArgs{Stream: dlq, Values: values}).Err(); err != nil {
		b.logger.Error("failed to push to DLQ", "error", err, "stream", dlq)
		return
	}
	b.logger.Warn("event pushed to DLQ", "stream", dlq)
}

// Close stops the consumers and closes the client.
func (b *RedisEventBus) Close() error {
	b.cancel()
	b.wg.Wait()
	return b.client.Close()
}

var _ eventbus.Bus = (*RedisEventBus)(nil)
