package models

// Counter 代表一個具名的耐久性計數器資料列
// 物品 id 的發放使用名為 item-id 的那一列
type Counter struct {
	Name  string `gorm:"primaryKey;type:varchar(64)"`
	Value uint64 `gorm:"not null"`
}
