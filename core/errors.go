package core

import "errors"

// 引擎對外回報的錯誤種類，呼叫端以 errors.Is 區分
// 這些錯誤都發生在任何寫入之前，失敗的呼叫不會留下部分變更
var (
	// ErrItemNotFound 表示指定的物品 id 不存在
	ErrItemNotFound = errors.New("item could not be found")
	// ErrNotOwner 表示呼叫者不是物品的擁有者
	ErrNotOwner = errors.New("caller is not the item owner")
	// ErrSelfBid 表示擁有者試圖對自己的物品出價
	ErrSelfBid = errors.New("cannot bid for your own item")
	// ErrItemInactive 表示物品已停止刊登，不再接受出價
	ErrItemInactive = errors.New("item is not actively listed")
	// ErrBidTooLow 表示出價金額未嚴格高於目前最高出價
	ErrBidTooLow = errors.New("bid cannot be lower than the current highest bid")
)
