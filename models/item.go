package models

import (
	"github.com/google/uuid"

	"gavel/core"
)

// Item 代表拍賣帳本中單一物品的資料列
// id 由引擎的計數器發放，因此不使用資料庫的自動遞增
// 出價歷史以 jsonb 內嵌於同一列，讓每個引擎操作維持單鍵存取的語意
type Item struct {
	ID           uint64     `gorm:"primaryKey;autoIncrement:false"`
	Owner        uuid.UUID  `gorm:"type:uuid;not null;<-:create"`
	Description  string     `gorm:"type:text;not null"`
	HighestBid   uint64     `gorm:"not null"`
	ResultDate   uint64     `gorm:"not null"`
	LatestUpdate uint64     `gorm:"not null"`
	IsActive     bool       `gorm:"not null"`
	Bids         []core.Bid `gorm:"serializer:json;type:jsonb;not null"`
}
