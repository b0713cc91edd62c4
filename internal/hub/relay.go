package hub

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisRelay mirrors broadcast snapshots onto a Redis pub/sub channel
// so off-board dashboards can follow the car without holding a direct
// websocket. Delivery is best effort: publish failures are logged and
// swallowed so a Redis hiccup does not evict the relay from the hub.
type RedisRelay struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

func NewRedisRelay(client *redis.Client, channel string, logger *slog.Logger) *RedisRelay {
	return &RedisRelay{
		client:  client,
		channel: channel,
		logger:  logger.With("component", "redis-relay", "channel", channel),
	}
}

func (r *RedisRelay) ID() string {
	return "redis-relay"
}

func (r *RedisRelay) Send(ctx context.Context, msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		r.logger.Error("failed to marshal snapshot", "error", err)
		return nil
	}

	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		r.logger.Warn("redis publish failed", "error", err)
	}
	return nil
}

func (r *RedisRelay) Close() error {
	return r.client.Close()
}
