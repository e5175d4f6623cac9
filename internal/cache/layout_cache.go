package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
)

// LayoutCache is a read-through cache over the layout repository, keyed
// by session and page so page navigation stays snappy.
type LayoutCache interface {
	Set(ctx context.Context, sessionID string, page int, layout *model.Layout) error
	Get(ctx context.Context, sessionID string, page int) (*model.Layout, error)
	Delete(ctx context.Context, sessionID string, page int) error
}

type layoutCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLayoutCache(client *redis.Client, ttl time.Duration) LayoutCache {
	return &layoutCache{
		client: client,
		ttl:    ttl,
	}
}

func layoutKey(sessionID string, page int) string {
	return fmt.Sprintf("layout:%s:%d", sessionID, page)
}

func (c *layoutCache) Set(ctx context.Context, sessionID string, page int, layout *model.Layout) error {
	data, err := json.Marshal(layout)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, layoutKey(sessionID, page), data, c.ttl).Err()
}

func (c *layoutCache) Get(ctx context.Context, sessionID string, page int) (*model.Layout, error) {
	data, err := c.client.Get(ctx, layoutKey(sessionID, page)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var layout model.Layout
	err = json.Unmarshal([]byte(data), &layout)
	return &layout, err
}

func (c *layoutCache) Delete(ctx context.Context, sessionID string, page int) error {
	return c.client.Del(ctx, layoutKey(sessionID, page)).Err()
}
