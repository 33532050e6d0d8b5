package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gavel/core"
	"gavel/models"
)

// Store 實現了 core.IItemStore 介面，將物品存放於 PostgreSQL
// 每個物品對應一列，Insert/Remove 在交易中讀取舊值後寫入，
// 以便像鍵值儲存一樣回報先前的值
type Store struct {
	db *gorm.DB
}

// NewStore 建立一個新的 Store 實例
func NewStore(db *gorm.DB) core.IItemStore {
	return &Store{db: db}
}

func toRecord(item core.Item) models.Item {
	return models.Item{
		ID:           item.ID,
		Owner:        item.Owner,
		Description:  item.Description,
		HighestBid:   item.HighestBid,
		ResultDate:   item.ResultDate,
		LatestUpdate: item.LatestUpdate,
		IsActive:     item.IsActive,
		Bids:         item.Bids,
	}
}

func toItem(record models.Item) core.Item {
	item := core.Item{
		ID:           record.ID,
		Owner:        record.Owner,
		Description:  record.Description,
		HighestBid:   record.HighestBid,
		ResultDate:   record.ResultDate,
		LatestUpdate: record.LatestUpdate,
		IsActive:     record.IsActive,
		Bids:         record.Bids,
	}
	if item.Bids == nil {
		item.Bids = []core.Bid{}
	}
	return item
}

// Get 依 id 取得物品，不存在時回傳 nil
func (s *Store) Get(ctx context.Context, id uint64) (*core.Item, error) {
	const op = "postgres.Store.Get"
	var record models.Item
	if result := s.db.WithContext(ctx).First(&record, "id = ?", id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: failed to find item, err=%w", op, result.Error)
	}
	item := toItem(record)
	return &item, nil
}

// Insert 無條件寫入物品，回傳先前的值（若存在）
func (s *Store) Insert(ctx context.Context, id uint64, item core.Item) (*core.Item, error) {
	const op = "postgres.Store.Insert"
	var previous *core.Item
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.Item
		if result := tx.First(&record, "id = ?", id); result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to find previous item, err=%w", result.Error)
			}
		} else {
			prev := toItem(record)
			previous = &prev
		}
		newRecord := toRecord(item)
		if result := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&newRecord); result.Error != nil {
			return fmt.Errorf("failed to upsert item, err=%w", result.Error)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return previous, nil
}

// Remove 移除物品，回傳被移除的值（若存在）
func (s *Store) Remove(ctx context.Context, id uint64) (*core.Item, error) {
	const op = "postgres.Store.Remove"
	var removed *core.Item
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.Item
		if result := tx.First(&record, "id = ?", id); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to find item, err=%w", result.Error)
		}
		if result := tx.Delete(&models.Item{}, "id = ?", id); result.Error != nil {
			return fmt.Errorf("failed to delete item, err=%w", result.Error)
		}
		prev := toItem(record)
		removed = &prev
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return removed, nil
}

// Enumerate 依 id 升冪列出所有物品
func (s *Store) Enumerate(ctx context.Context) ([]core.Item, error) {
	const op = "postgres.Store.Enumerate"
	var records []models.Item
	if result := s.db.WithContext(ctx).Order("id ASC").Find(&records); result.Error != nil {
		return nil, fmt.Errorf("%s: failed to list items, err=%w", op, result.Error)
	}
	items := make([]core.Item, 0, len(records))
	for _, record := range records {
		items = append(items, toItem(record))
	}
	return items, nil
}
