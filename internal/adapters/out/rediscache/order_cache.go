// Package rediscache caches order read snapshots in Redis. The cache sits
// in front of the query handlers; commands invalidate an order's entry
// after committing a state change.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ferremas/internal/core/application/usecases/queries"
	"ferremas/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

// snapshotTTL bounds staleness when an invalidation is lost.
const snapshotTTL = 5 * time.Minute

// OrderSnapshotCache stores serialized OrderSnapshot values keyed by order id.
// It implements both the query-side read-through cache and the command-side
// invalidator.
type OrderSnapshotCache struct {
	client *redis.Client
}

// NewOrderSnapshotCache creates a cache backed by the given Redis server.
func NewOrderSnapshotCache(addr string, password string, db int) *OrderSnapshotCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &OrderSnapshotCache{client: client}
}

func snapshotKey(orderID string) string {
	return "order:snapshot:" + orderID
}

// Ping verifies connectivity at startup.
func (c *OrderSnapshotCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *OrderSnapshotCache) Close() error {
	return c.client.Close()
}

// Get returns the cached snapshot of an order. A miss is (nil, nil).
func (c *OrderSnapshotCache) Get(ctx context.Context, orderID kernel.UUID) (*queries.OrderSnapshot, error) {
	val, err := c.client.Get(ctx, snapshotKey(orderID.String())).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read order snapshot: %w", err)
	}

	var snapshot queries.OrderSnapshot
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		return nil, fmt.Errorf("decode order snapshot: %w", err)
	}
	return &snapshot, nil
}

// Set stores a snapshot with the standard TTL.
func (c *OrderSnapshotCache) Set(ctx context.Context, snapshot *queries.OrderSnapshot) error {
	if snapshot == nil {
		return nil
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode order snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey(snapshot.ID), payload, snapshotTTL).Err(); err != nil {
		return fmt.Errorf("store order snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot after a workflow action commits.
// Deleting an absent key is not an error.
func (c *OrderSnapshotCache) Invalidate(ctx context.Context, orderID kernel.UUID) error {
	if err := c.client.Del(ctx, snapshotKey(orderID.String())).Err(); err != nil {
		return fmt.Errorf("invalidate order snapshot: %w", err)
	}
	return nil
}
