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

// DefaultCounterName 是物品 id 計數器使用的資料列名稱
const DefaultCounterName = "item-id"

// Counter 實現了 core.ICounterCell 介面，以單一資料列保存計數器
// 資料列不存在時視為 0
type Counter struct {
	db   *gorm.DB
	name string
}

// NewCounter 建立一個新的 Counter 實例
func NewCounter(db *gorm.DB, name string) core.ICounterCell {
	if name == "" {
		name = DefaultCounterName
	}
	return &Counter{db: db, name: name}
}

// Get 取得目前的計數器值
func (c *Counter) Get(ctx context.Context) (uint64, error) {
	const op = "postgres.Counter.Get"
	var record models.Counter
	if result := c.db.WithContext(ctx).First(&record, "name = ?", c.name); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: failed to find counter, err=%w", op, result.Error)
	}
	return record.Value, nil
}

// Set 將計數器設為指定值
func (c *Counter) Set(ctx context.Context, value uint64) error {
	const op = "postgres.Counter.Set"
	record := models.Counter{Name: c.name, Value: value}
	result := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&record)
	if result.Error != nil {
		return fmt.Errorf("%s: failed to upsert counter, err=%w", op, result.Error)
	}
	return nil
}
