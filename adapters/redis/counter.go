package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"gavel/core"
)

// Counter 實現了 core.ICounterCell 介面，以單一 Redis 字串鍵保存計數器
// 鍵不存在時視為 0
type Counter struct {
	client *redis.Client
	key    string
}

// NewCounter 建立一個新的 Counter 實例
func NewCounter(client *redis.Client, opts ...StoreOption) core.ICounterCell {
	options := &StoreOptions{}
	for _, opt := range opts {
		opt(options)
	}

	return &Counter{
		client: client,
		key:    options.Prefix + "item-id-counter",
	}
}

// Get 取得目前的計數器值
func (c *Counter) Get(ctx context.Context) (uint64, error) {
	const op = "redis.Counter.Get"
	value, err := c.client.Get(ctx, c.key).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get counter, err=%w", op, err)
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid counter value %q, err=%w", op, value, err)
	}
	return parsed, nil
}

// Set 將計數器設為指定值
func (c *Counter) Set(ctx context.Context, value uint64) error {
	const op = "redis.Counter.Set"
	if err := c.client.Set(ctx, c.key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: failed to set counter, err=%w", op, err)
	}
	return nil
}
