package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	queuePrefix = "rpc:"
	replyPrefix = "rpc:reply:"
)

// QueueFor is the list a service reads its requests from.
func QueueFor(service string) string {
	return queuePrefix + service
}

// Redis carries requests over Redis lists: the caller pushes onto the
// service queue and blocks on a private reply list.
type Redis struct {
	client   *redis.Client
	timeout  time.Duration
	replyTTL time.Duration
	logger   *slog.Logger
}

// NewRedis creates a transport. timeout bounds how long a caller waits for a
// reply.
func NewRedis(client *redis.Client, timeout time.Duration, logger *slog.Logger) *Redis {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Redis{
		client:   client,
		timeout:  timeout,
		replyTTL: timeout * 2,
		logger:   logger.With("transport", "redis"),
	}
}

// Send implements rpc.Transport.
func (r *Redis) Send(ctx context.Context, req *rpc.Request) (*rpc.Reply, error) {
	out := *req
	out.ReplyTo = replyPrefix + uuid.NewString()
	raw, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("redis transport: encode request: %w", err)
	}
	if err := r.client.RPush(ctx, QueueFor(req.Service), raw).Err(); err != nil {
		return nil, fmt.Errorf("redis transport: push request: %w", err)
	}

	res, err := r.client.BLPop(ctx, r.timeout, out.ReplyTo).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("redis transport: no reply from %s within %s", req.Service, r.timeout)
		}
		return nil, fmt.Errorf("redis transport: wait for reply: %w", err)
	}
	// BLPOP returns [key, value].
	var reply rpc.Reply
	if err := json.Unmarshal([]byte(res[1]), &reply); err != nil {
		return nil, fmt.Errorf("redis transport: decode reply: %w", err)
	}
	return &reply, nil
}

// Serve consumes the queues of services and answers each request with srv
// until ctx is cancelled.
func (r *Redis) Serve(ctx context.Context, srv *rpc.Server, services ...string) error {
	if len(services) == 0 {
		return fmt.Errorf("redis transport: no services to serve")
	}
	queues := make([]string, 0, len(services))
	for _, s := range services {
		queues = append(queues, QueueFor(s))
	}
	r.logger.Info("serving rpc queues", "queues", queues)

	var wg sync.WaitGroup
	defer wg.Wait()
	for ctx.Err() == nil {
		res, err := r.client.BLPop(ctx, time.Second, queues...).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			r.logger.Error("failed to pop request", "error", err)
			time.Sleep(time.Second)
			continue
		}
		wg.Add(1)
		go func(raw string) {
			defer wg.Done()
			r.serveOne(ctx, srv, raw)
		}(res[1])
	}
	return nil
}

func (r *Redis) serveOne(ctx context.Context, srv *rpc.Server, raw string) {
	var req rpc.Request
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		r.logger.Error("dropping malformed request", "error", err)
		return
	}
	if req.ReplyTo == "" {
		r.logger.Warn("dropping request without reply address", "service", req.Service, "pattern", req.Pattern)
		return
	}
	reply := srv.Handle(ctx, &req)
	out, err := json.Marshal(reply)
	if err != nil {
		r.logger.Error("failed to encode reply", "error", err)
		return
	}
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, req.ReplyTo, out)
	pipe.Expire(ctx, req.ReplyTo, r.replyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("failed to push reply", "error", err, "reply_to", req.ReplyTo)
	}
}

var _ rpc.Transport = (*Redis)(nil)
