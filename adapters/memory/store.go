package memory

import (
	"context"
	"sort"
	"sync"

	"gavel/core"
)

// Store 實現了 core.IItemStore 介面，提供以行程內 map 為基礎的物品儲存
// 主要用於測試與開發環境；不具跨行程的耐久性
// 所有讀寫都回傳深拷貝，呼叫端無法繞過 Insert 變更已儲存的狀態
type Store struct {
	mu    sync.RWMutex
	items map[uint64]core.Item
}

// NewStore 建立一個新的 Store 實例
func NewStore() *Store {
	return &Store{
		items: make(map[uint64]core.Item),
	}
}

// Get 依 id 取得物品，不存在時回傳 nil
func (s *Store) Get(ctx context.Context, id uint64) (*core.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	cloned := item.Clone()
	return &cloned, nil
}

// Insert 無條件寫入物品，回傳先前的值（若存在）
func (s *Store) Insert(ctx context.Context, id uint64, item core.Item) (*core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var previous *core.Item
	if prev, ok := s.items[id]; ok {
		cloned := prev.Clone()
		previous = &cloned
	}
	s.items[id] = item.Clone()
	return previous, nil
}

// Remove 移除物品，回傳被移除的值（若存在）
func (s *Store) Remove(ctx context.Context, id uint64) (*core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	delete(s.items, id)
	cloned := item.Clone()
	return &cloned, nil
}

// Enumerate 依 id 升冪列出所有物品
func (s *Store) Enumerate(ctx context.Context) ([]core.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uint64, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	items := make([]core.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, s.items[id].Clone())
	}
	return items, nil
}
