package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storelink/paygate/internal/shared/config"
)

// NewRedisClient creates a new Redis client.
func NewRedisClient(cfg *config.RedisConfig) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// Close closes the Redis client.
func Close(client redis.UniversalClient) error {
	return client.Close()
}

// DeliveryDedup is a fast-path seen-set for webhook deliveries. It sits in
// front of the durable webhook-event record; a miss here still falls
// through to the database check, so losing keys is safe.
type DeliveryDedup struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewDeliveryDedup creates a delivery dedup backed by Redis.
func NewDeliveryDedup(client redis.UniversalClient, ttl time.Duration) *DeliveryDedup {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &DeliveryDedup{client: client, ttl: ttl}
}

// MarkSeen records a delivery id. Returns true if the id was already seen.
func (d *DeliveryDedup) MarkSeen(ctx context.Context, deliveryID string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(deliveryID), 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark delivery seen: %w", err)
	}
	return !ok, nil
}

// Forget drops a delivery id so a failed delivery can be retried.
func (d *DeliveryDedup) Forget(ctx context.Context, deliveryID string) error {
	return d.client.Del(ctx, d.key(deliveryID)).Err()
}

func (d *DeliveryDedup) key(deliveryID string) string {
	return "webhook:seen:" + deliveryID
}
