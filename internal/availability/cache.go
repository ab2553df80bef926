package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hotelops/guest-services-backend/internal/pkg/request"
)

// CachedSource wraps a Source with a short-TTL Redis cache. Availability
// snapshots are advisory and stale-by-design, so serving a cached copy for a
// few seconds does not change the correctness model: the backend re-validates
// capacity at purchase time either way.
type CachedSource struct {
	next  Source
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedSource decorates next with Redis caching. TTL <= 0 disables the
// cache and passes every call through.
func NewCachedSource(next Source, rdb *redis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{next: next, redis: rdb, ttl: ttl}
}

func (c *CachedSource) FetchAvailability(ctx context.Context, serviceID string, r Range) ([]Record, error) {
	key := fmt.Sprintf("availability:%s:%s:%s",
		serviceID, r.From.Format(request.DateFormat), r.To.Format(request.DateFormat))

	if records, ok := c.read(ctx, key); ok {
		return records, nil
	}

	records, err := c.next.FetchAvailability(ctx, serviceID, r)
	if err != nil {
		return nil, err
	}
	c.write(ctx, key, records)
	return records, nil
}

func (c *CachedSource) read(ctx context.Context, key string) ([]Record, bool) {
	if c.redis == nil || c.ttl <= 0 {
		return nil, false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var records []Record
	if err := json.Unmarshal([]byte(val), &records); err != nil {
		return nil, false
	}
	return records, true
}

func (c *CachedSource) write(ctx context.Context, key string, records []Record) {
	if c.redis == nil || c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(records)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}
