package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Yatube/internal/model"
	"Yatube/internal/pkg"

	"github.com/redis/go-redis/v9"
)

const (
	IndexTTL           = 20 * time.Second
	IndexVersionKey    = "posts:index:version"
	IndexPageKeyPrefix = "posts:index:page"
)

// IndexCache holds rendered pages of the main post listing. Every post write
// bumps the version, which orphans all cached pages at once; orphans expire
// through their TTL.
type IndexCache struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewIndexCache(rdb *redis.Client, ttl time.Duration) *IndexCache {
	if ttl <= 0 {
		ttl = IndexTTL
	}
	return &IndexCache{RDB: rdb, TTL: ttl}
}

func (c *IndexCache) version(ctx context.Context) (int64, error) {
	v, err := c.RDB.Get(ctx, IndexVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *IndexCache) pageKey(version int64, number, size int) string {
	return fmt.Sprintf("%s:v%d:s%d:p%d", IndexPageKeyPrefix, version, size, number)
}

func (c *IndexCache) Get(ctx context.Context, number, size int) (pkg.Page[model.Post], bool, error) {
	var page pkg.Page[model.Post]
	v, err := c.version(ctx)
	if err != nil {
		return page, false, err
	}
	raw, err := c.RDB.Get(ctx, c.pageKey(v, number, size)).Bytes()
	if errors.Is(err, redis.Nil) {
		return page, false, nil
	}
	if err != nil {
		return page, false, err
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		// a broken entry is treated as a miss and overwritten on refill
		return page, false, nil
	}
	return page, true, nil
}

func (c *IndexCache) Set(ctx context.Context, number, size int, page pkg.Page[model.Post]) error {
	v, err := c.version(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.RDB.Set(ctx, c.pageKey(v, number, size), raw, c.TTL).Err()
}

func (c *IndexCache) Invalidate(ctx context.Context) error {
	return c.RDB.Incr(ctx, IndexVersionKey).Err()
}
