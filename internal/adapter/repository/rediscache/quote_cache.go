package rediscache

import (
	"context"
	"errors"
	"time"

	"hdb-financing/internal/domain/financing"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "fin:quote:"

type QuoteCache struct{ rdb *redis.Client }

func NewQuoteCache(rdb *redis.Client) *QuoteCache { return &QuoteCache{rdb: rdb} }

var _ financing.QuoteCache = (*QuoteCache)(nil)

func (c *QuoteCache) Get(ctx context.Context, fingerprint string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, keyPrefix+fingerprint).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *QuoteCache) Set(ctx context.Context, fingerprint string, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, keyPrefix+fingerprint, payload, ttl).Err()
}
