package cache

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DeliveryTTL is how long a seen webhook delivery id is remembered.
const DeliveryTTL = 24 * time.Hour

const deliveryKeyPrefix = "webhook:delivery:"

// Deduplicator records webhook deliveries so retries are processed once.
type Deduplicator interface {
	// FirstDelivery reports whether id has not been seen before and records it.
	FirstDelivery(ctx context.Context, id string) (bool, error)
	// Forget removes id so a failed delivery can be retried.
	Forget(ctx context.Context, id string) error
}

// NopDeduplicator treats every delivery as new.
type NopDeduplicator struct{}

func (NopDeduplicator) FirstDelivery(context.Context, string) (bool, error) { return true, nil }
func (NopDeduplicator) Forget(context.Context, string) error                { return nil }

// RedisDeduplicator stores delivery ids with SET NX and a TTL.
type RedisDeduplicator struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("redis connected")
	return client, nil
}

// NewRedisDeduplicator creates a Redis-backed deduplicator.
func NewRedisDeduplicator(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisDeduplicator {
	return &RedisDeduplicator{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "cache").Logger(),
	}
}

func (d *RedisDeduplicator) FirstDelivery(ctx context.Context, id string) (bool, error) {
	ok, err := d.client.SetNX(ctx, deliveryKeyPrefix+id, time.Now().UTC().Format(time.RFC3339), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record delivery %s: %w", id, err)
	}
	if !ok {
		d.logger.Debug().Str("delivery_id", id).Msg("duplicate webhook delivery")
	}
	return ok, nil
}

func (d *RedisDeduplicator) Forget(ctx context.Context, id string) error {
	if err := d.client.Del(ctx, deliveryKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to forget delivery %s: %w", id, err)
	}
	return nil
}
