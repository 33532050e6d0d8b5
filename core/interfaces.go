//go:generate mockgen -package=core -destination=mock.go -source=interfaces.go

package core

import (
	"context"
)

// IItemStore 定義了耐久性物品儲存的操作介面
// 回傳的 *Item 為 nil 表示該 id 不存在；每個操作對單一鍵而言都是原子的
type IItemStore interface {
	// Get 依 id 取得物品
	Get(ctx context.Context, id uint64) (*Item, error)
	// Insert 無條件寫入物品，回傳先前的值（若存在）
	Insert(ctx context.Context, id uint64, item Item) (*Item, error)
	// Remove 移除物品，回傳被移除的值（若存在）
	Remove(ctx context.Context, id uint64) (*Item, error)
	// Enumerate 依 id 升冪列出所有物品
	Enumerate(ctx context.Context) ([]Item, error)
}

// ICounterCell 定義了耐久性單一計數器的操作介面，用於發放物品 id
type ICounterCell interface {
	// Get 取得目前的計數器值
	Get(ctx context.Context) (uint64, error)
	// Set 將計數器設為指定值
	Set(ctx context.Context, value uint64) error
}
