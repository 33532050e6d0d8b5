package feed

import (
	"github.com/google/uuid"
)

// Event 代表一筆已被引擎接受的出價事件
type Event struct {
	ItemID  uint64    `json:"itemId"`
	Bidder  uuid.UUID `json:"bidder"`
	Amount  uint64    `json:"amount"`
	BidDate uint64    `json:"bidDate"`
}

// IManager 定義了出價事件廣播管理器的介面
type IManager interface {
	// Start 啟動管理器，開始處理事件的接收與廣播。
	// 應在呼叫其他方法前先呼叫此方法。
	Start()
	// Done 停止管理器，釋放所有資源。
	Done()
	// Subscribe 訂閱指定物品的出價事件，返回接收事件的唯讀通道。
	Subscribe(itemID uint64) (<-chan Event, error)
	// Publish 發布一筆出價事件。
	Publish(event Event) error
	// Unsubscribe 取消訂閱指定物品的出價事件。
	Unsubscribe(itemID uint64, ch <-chan Event)
}
