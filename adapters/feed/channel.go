package feed

import (
	"sync"
)

// subscriber 將事件通道與取消訂閱的信號配對
// done 被關閉後，進行中的廣播不會再對 ch 傳送
type subscriber struct {
	ch   chan Event
	done chan struct{}
	stop sync.Once
}

// Channel 管理針對單一物品的所有訂閱者，
// 並將接收到的出價事件廣播給所有訂閱者。
type Channel struct {
	subscribers map[<-chan Event]*subscriber
	mu          sync.RWMutex
}

// NewChannel 建立一個新的 Channel 實例
func NewChannel() *Channel {
	return &Channel{
		subscribers: make(map[<-chan Event]*subscriber),
	}
}

// Subscribe 建立一個新的 chan Event，將其加入 subscribers，並回傳唯讀通道給呼叫者。
func (c *Channel) Subscribe() <-chan Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub := &subscriber{
		ch:   make(chan Event),
		done: make(chan struct{}),
	}
	c.subscribers[sub.ch] = sub
	return sub.ch
}

// Unsubscribe 從 subscribers 中移除指定的通道，並關閉該通道。
// NOTE: 必須先關閉 done 再取得寫入鎖。廣播可能正持有讀取鎖
// 並阻塞在對此訂閱者的傳送上，關閉 done 讓它得以放行。
func (c *Channel) Unsubscribe(ch <-chan Event) {
	c.mu.RLock()
	sub, exists := c.subscribers[ch]
	c.mu.RUnlock()
	if !exists {
		return
	}
	sub.stop.Do(func() { close(sub.done) })

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.subscribers[ch]; exists {
		delete(c.subscribers, ch)
		close(sub.ch)
	}
}

// UnsubscribeAll 關閉所有訂閱者的通道並清空訂閱清單。
func (c *Channel) UnsubscribeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, sub := range c.subscribers {
		sub.stop.Do(func() { close(sub.done) })
		close(sub.ch)
	}
	clear(c.subscribers)
}

// Broadcast 將事件廣播給所有仍在訂閱清單中的通道。
// 已取消訂閱的訂閱者會直接跳過，不會收到該事件。
func (c *Channel) Broadcast(event Event) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, sub := range c.subscribers {
		select {
		case sub.ch <- event:
		case <-sub.done:
		}
	}
}

// IsIdle 判斷 subscribers 是否為空。
func (c *Channel) IsIdle() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subscribers) == 0
}
