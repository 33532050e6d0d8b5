package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Engine 是拍賣狀態變更引擎，負責物品與出價的驗證、授權與提交
// 每個操作都是一次同步的 讀取→驗證→授權→提交 流程，
// 呼叫的序列化由外部的傳輸層負責（引擎本身不加鎖）
type Engine struct {
	items   IItemStore
	counter ICounterCell
}

// NewEngine 建立一個新的引擎實例
// items 與 counter 由行程啟動時建構一次，之後貫穿所有呼叫
func NewEngine(items IItemStore, counter ICounterCell) *Engine {
	return &Engine{
		items:   items,
		counter: counter,
	}
}

// authorized 判斷呼叫者是否為物品的擁有者，為純判斷式，無任何副作用
func authorized(caller, owner uuid.UUID) bool {
	return caller == owner
}

// nextID 回傳目前的計數器值，並在回傳前將計數器耐久地遞增一
// 同一個值在儲存層的生命週期內不會被發放兩次
// NOTE: 若後續的物品寫入失敗，已取出的 id 會被永久跳過，
// 這是刻意接受的缺口，避免跨兩個耐久寫入的交易回滾
func (e *Engine) nextID(ctx context.Context) (uint64, error) {
	const op = "Engine.nextID"
	id, err := e.counter.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("[%s] Fail to read id counter, err=%w", op, err)
	}
	if err := e.counter.Set(ctx, id+1); err != nil {
		return 0, fmt.Errorf("[%s] Fail to advance id counter, err=%w", op, err)
	}
	return id, nil
}

// GetItem 依 id 取得單一物品，不存在時回傳 nil
func (e *Engine) GetItem(ctx context.Context, id uint64) (*Item, error) {
	const op = "Engine.GetItem"
	item, err := e.items.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to get item, err=%w", op, err)
	}
	return item, nil
}

// GetAllItems 回傳所有物品，以 id 為鍵
func (e *Engine) GetAllItems(ctx context.Context) (map[uint64]Item, error) {
	const op = "Engine.GetAllItems"
	items, err := e.items.Enumerate(ctx)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to enumerate items, err=%w", op, err)
	}
	all := make(map[uint64]Item, len(items))
	for _, item := range items {
		all[item.ID] = item
	}
	return all, nil
}

// ListItem 建立一個新的刊登物品
// 擁有者為呼叫者本人，最高出價從 0 起算，出價歷史為空
func (e *Engine) ListItem(ctx context.Context, caller uuid.UUID, base ItemBase) (Item, error) {
	const op = "Engine.ListItem"
	id, err := e.nextID(ctx)
	if err != nil {
		return Item{}, fmt.Errorf("[%s] Fail to allocate item id, err=%w", op, err)
	}
	item := Item{
		ID:           id,
		Owner:        caller,
		Description:  base.Description,
		HighestBid:   0,
		LatestUpdate: base.LatestUpdate,
		ResultDate:   base.ResultDate,
		Bids:         []Bid{},
		IsActive:     base.IsActive,
	}
	if _, err := e.items.Insert(ctx, id, item); err != nil {
		return Item{}, fmt.Errorf("[%s] Fail to insert item, err=%w", op, err)
	}
	return item, nil
}

// EditItem 覆寫物品中由呼叫端提供的欄位
// 擁有者、id、最高出價與出價歷史不受影響；is_active 可雙向切換，
// 這是唯一能讓已停止刊登的物品重新接受出價的操作
func (e *Engine) EditItem(ctx context.Context, caller uuid.UUID, id uint64, base ItemBase) (Item, error) {
	const op = "Engine.EditItem"
	item, err := e.items.Get(ctx, id)
	if err != nil {
		return Item{}, fmt.Errorf("[%s] Fail to get item, err=%w", op, err)
	}
	if item == nil {
		return Item{}, ErrItemNotFound
	}
	// 授權在任何變更之前解決，失敗時儲存的值保持原狀
	if !authorized(caller, item.Owner) {
		return Item{}, ErrNotOwner
	}
	updated := item.Clone()
	updated.Description = base.Description
	updated.ResultDate = base.ResultDate
	updated.IsActive = base.IsActive
	updated.LatestUpdate = base.LatestUpdate
	if _, err := e.items.Insert(ctx, id, updated); err != nil {
		return Item{}, fmt.Errorf("[%s] Fail to commit item, err=%w", op, err)
	}
	return updated, nil
}

// StopListing 將物品設為停止刊登，其餘欄位不變
// 對已停止的物品呼叫時同樣成功且狀態不變
func (e *Engine) StopListing(ctx context.Context, caller uuid.UUID, id uint64) (Item, error) {
	const op = "Engine.StopListing"
	item, err := e.items.Get(ctx, id)
	if err != nil {
		return Item{}, fmt.Errorf("[%s] Fail to get item, err=%w", op, err)
	}
	if item == nil {
		return Item{}, ErrItemNotFound
	}
	if !authorized(caller, item.Owner) {
		return Item{}, ErrNotOwner
	}
	updated := item.Clone()
	updated.IsActive = false
	if _, err := e.items.Insert(ctx, id, updated); err != nil {
		return Item{}, fmt.Errorf("[%s] Fail to commit item, err=%w", op, err)
	}
	return updated, nil
}

// DeleteItem 將物品自儲存層移除並回傳被移除的 id
// 出價歷史隨之不可回復地消失；被移除的 id 永遠不會再被發放
func (e *Engine) DeleteItem(ctx context.Context, caller uuid.UUID, id uint64) (uint64, error) {
	const op = "Engine.DeleteItem"
	item, err := e.items.Get(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("[%s] Fail to get item, err=%w", op, err)
	}
	if item == nil {
		return 0, ErrItemNotFound
	}
	if !authorized(caller, item.Owner) {
		return 0, ErrNotOwner
	}
	if _, err := e.items.Remove(ctx, id); err != nil {
		return 0, fmt.Errorf("[%s] Fail to remove item, err=%w", op, err)
	}
	return item.ID, nil
}

// BidForAnItem 對物品出價，成功時回傳物品 id
// 檢查順序固定為 存在→非擁有者→刊登中→金額嚴格較高，
// 因此擁有者對已停止刊登的物品出價時回報的是 ErrSelfBid 而非 ErrItemInactive
func (e *Engine) BidForAnItem(ctx context.Context, caller uuid.UUID, id uint64, base BidBase) (uint64, error) {
	const op = "Engine.BidForAnItem"
	item, err := e.items.Get(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("[%s] Fail to get item, err=%w", op, err)
	}
	if item == nil {
		return 0, ErrItemNotFound
	}
	if authorized(caller, item.Owner) {
		return 0, ErrSelfBid
	}
	if !item.IsActive {
		return 0, ErrItemInactive
	}
	if base.Amount <= item.HighestBid {
		return 0, ErrBidTooLow
	}
	updated := item.Clone()
	bid := Bid{
		ItemID:  id,
		Bidder:  caller,
		Amount:  base.Amount,
		BidDate: base.BidDate,
	}
	updated.Bids = append(updated.Bids, bid)
	updated.HighestBid = bid.Amount
	if _, err := e.items.Insert(ctx, id, updated); err != nil {
		return 0, fmt.Errorf("[%s] Fail to commit item, err=%w", op, err)
	}
	return item.ID, nil
}
