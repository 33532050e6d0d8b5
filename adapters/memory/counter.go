package memory

import (
	"context"
	"sync"
)

// Counter 實現了 core.ICounterCell 介面，提供行程內的單一計數器
type Counter struct {
	mu    sync.Mutex
	value uint64
}

// NewCounter 建立一個新的 Counter 實例，初始值為 0
func NewCounter() *Counter {
	return &Counter{}
}

// Get 取得目前的計數器值
func (c *Counter) Get(ctx context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, nil
}

// Set 將計數器設為指定值
func (c *Counter) Set(ctx context.Context, value uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	return nil
}
