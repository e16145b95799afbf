package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const summaryKey = "backoffice:dashboard:summary"

// DefaultSummaryTTL bounds staleness for readers that race the explicit
// invalidation; writers invalidate the key directly after every
// balance-affecting commit.
const DefaultSummaryTTL = 10 * time.Minute

type DashboardSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDashboardSummaryCache(client *redis.Client, ttl time.Duration) *DashboardSummaryCache {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &DashboardSummaryCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *DashboardSummaryCache) GetSummary(ctx context.Context, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, summaryKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *DashboardSummaryCache) SetSummary(ctx context.Context, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey, raw, c.ttl).Err()
}

func (c *DashboardSummaryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, summaryKey).Err()
}
