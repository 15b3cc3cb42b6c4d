package donations

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	platformredis "petconnect/internal/platform/redis"
	"petconnect/pkg/domain"
)

// TotalsCache caches campaign raised totals. Get's second return reports a
// hit; misses and cache errors both fall back to the store.
type TotalsCache interface {
	Get(ctx context.Context, id domain.CampaignID) (int64, bool, error)
	Set(ctx context.Context, id domain.CampaignID, raisedCents int64) error
}

const totalsTTL = 24 * time.Hour

// RedisTotalsCache is the write-through redis implementation.
type RedisTotalsCache struct {
	client *platformredis.Client
}

func NewRedisTotalsCache(client *platformredis.Client) *RedisTotalsCache {
	return &RedisTotalsCache{client: client}
}

func totalsKey(id domain.CampaignID) string {
	return fmt.Sprintf("campaign:%s:raised_cents", id)
}

func (c *RedisTotalsCache) Get(ctx context.Context, id domain.CampaignID) (int64, bool, error) {
	raised, err := c.client.Get(ctx, totalsKey(id)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get campaign total: %w", err)
	}
	return raised, true, nil
}

func (c *RedisTotalsCache) Set(ctx context.Context, id domain.CampaignID, raisedCents int64) error {
	if err := c.client.Set(ctx, totalsKey(id), raisedCents, totalsTTL).Err(); err != nil {
		return fmt.Errorf("set campaign total: %w", err)
	}
	return nil
}
