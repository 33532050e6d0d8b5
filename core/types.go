package core

import (
	"github.com/google/uuid"
)

// Item 代表拍賣帳本中的一個刊登物品
// 包含擁有者、描述、目前最高出價、完整出價歷史與刊登狀態
type Item struct {
	ID           uint64    `json:"id" msgpack:"id"`
	Owner        uuid.UUID `json:"owner" msgpack:"owner"`
	Description  string    `json:"description" msgpack:"description"`
	HighestBid   uint64    `json:"highestBid" msgpack:"highestBid"`
	LatestUpdate uint64    `json:"latestUpdate" msgpack:"latestUpdate"`
	ResultDate   uint64    `json:"resultDate" msgpack:"resultDate"`
	Bids         []Bid     `json:"bids" msgpack:"bids"`
	IsActive     bool      `json:"isActive" msgpack:"isActive"`
}

// Bid 代表一筆已被接受的出價紀錄，寫入後不再變動
type Bid struct {
	ItemID  uint64    `json:"itemId" msgpack:"itemId"`
	Bidder  uuid.UUID `json:"bidder" msgpack:"bidder"`
	Amount  uint64    `json:"amount" msgpack:"amount"`
	BidDate uint64    `json:"bidDate" msgpack:"bidDate"`
}

// ItemBase 是呼叫端在 list/edit 時提供的欄位集合
// 時間戳記皆由呼叫端提供，引擎不驗證其是否為當下時間
type ItemBase struct {
	Description  string `json:"description"`
	ResultDate   uint64 `json:"resultDate"`
	IsActive     bool   `json:"isActive"`
	LatestUpdate uint64 `json:"latestUpdate"`
}

// BidBase 是呼叫端在出價時提供的欄位集合
type BidBase struct {
	Amount  uint64 `json:"amount"`
	BidDate uint64 `json:"bidDate"`
}

// Clone 回傳物品的深拷貝，出價歷史不與原值共享底層陣列
func (i Item) Clone() Item {
	cloned := i
	if i.Bids != nil {
		cloned.Bids = make([]Bid, len(i.Bids))
		copy(cloned.Bids, i.Bids)
	}
	return cloned
}
