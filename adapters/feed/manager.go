package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/smallnest/chanx"
)

// manager 管理所有物品的出價事件訂閱與廣播
// 發布端寫入一個無上限緩衝的通道，確保出價路徑不會被緩慢的訂閱者阻塞
type manager struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger

	mu     sync.RWMutex   // 保護 active 和 channels 的讀寫
	wg     sync.WaitGroup // 用於等待廣播 goroutine 完成
	active bool           // 標記 manager 是否正在運作中

	upstream *chanx.UnboundedChan[Event] // 待廣播的事件佇列
	channels map[uint64]*Channel         // 每個物品一個頻道
}

// NewManager 建立一個新的出價事件廣播管理器
func NewManager(logger *slog.Logger) IManager {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &manager{
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger.With(slog.String("caller", "FeedManager")),
		upstream: chanx.NewUnboundedChan[Event](ctx, 100),
		channels: make(map[uint64]*Channel),
	}
}

// Start 啟動管理器，開始處理事件的接收與廣播。
// 應在呼叫其他方法前先呼叫此方法。
func (m *manager) Start() {
	m.mu.Lock()
	m.active = true
	m.mu.Unlock()

	// 啟動廣播 goroutine
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.logger.Info("broadcast goroutine stopped")
		for {
			select {
			case <-m.ctx.Done():
				return
			case event, ok := <-m.upstream.Out:
				if !ok {
					return
				}
				m.mu.RLock()
				channel, exists := m.channels[event.ItemID]
				m.mu.RUnlock()
				if exists {
					channel.Broadcast(event)
				}
			}
		}
	}()
}

// Done 停止管理器的運作。
func (m *manager) Done() {
	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()
		return
	}
	m.active = false
	m.mu.Unlock()

	m.cancel()
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, channel := range m.channels {
		channel.UnsubscribeAll()
	}
	clear(m.channels)
}

// Subscribe 訂閱指定物品的出價事件。
// 返回: 用於接收事件的唯讀通道，以及可能的錯誤
func (m *manager) Subscribe(itemID uint64) (<-chan Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active {
		return nil, context.Canceled
	}

	c, ok := m.channels[itemID]
	if !ok {
		c = NewChannel()
		m.channels[itemID] = c
	}
	return c.Subscribe(), nil
}

// Publish 發布一筆出價事件。
func (m *manager) Publish(event Event) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.active {
		return context.Canceled
	}

	select {
	case m.upstream.In <- event:
		return nil
	case <-m.ctx.Done():
		return context.Canceled
	}
}

// Unsubscribe 取消訂閱指定物品的出價事件。
func (m *manager) Unsubscribe(itemID uint64, ch <-chan Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.channels[itemID]
	if !ok {
		return
	}

	c.Unsubscribe(ch)
	if c.IsIdle() {
		delete(m.channels, itemID)
	}
}
