package core_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gavel/adapters/memory"
	"gavel/core"
)

var (
	alice   = uuid.MustParse("ab8cb1ca-7a94-41c8-a61f-e7a194d5bb73")
	bob     = uuid.MustParse("7d2f8cb5-46b9-4d4c-9a0a-4a36550d1c5d")
	charlie = uuid.MustParse("c1a9c6ab-19aa-4f0c-a6c6-0cf4c53d5f3c")
)

func setupEngine() (*core.Engine, *memory.Store) {
	store := memory.NewStore()
	return core.NewEngine(store, memory.NewCounter()), store
}

func TestListItem(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()

	item, err := engine.ListItem(ctx, alice, core.ItemBase{
		Description:  "vintage clock",
		ResultDate:   1700000000,
		IsActive:     true,
		LatestUpdate: 1690000000,
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(0), item.ID)
	assert.Equal(t, alice, item.Owner)
	assert.Equal(t, "vintage clock", item.Description)
	assert.Equal(t, uint64(0), item.HighestBid)
	assert.Empty(t, item.Bids)
	assert.True(t, item.IsActive)
	assert.Equal(t, uint64(1700000000), item.ResultDate)
	assert.Equal(t, uint64(1690000000), item.LatestUpdate)

	// 建立後可直接取回
	stored, err := engine.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, item, *stored)
}

func TestListItem_SequentialIDs(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()

	// 連續刊登的 id 必須嚴格遞增，且即使穿插刪除也不會重複
	var ids []uint64
	for i := 0; i < 3; i++ {
		item, err := engine.ListItem(ctx, alice, core.ItemBase{IsActive: true})
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}
	deleted, err := engine.DeleteItem(ctx, alice, ids[2])
	require.NoError(t, err)
	assert.Equal(t, ids[2], deleted)

	item, err := engine.ListItem(ctx, alice, core.ItemBase{IsActive: true})
	require.NoError(t, err)
	ids = append(ids, item.ID)

	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1], "ids must be strictly increasing")
	}
}

func TestBidForAnItem(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(ctx context.Context, engine *core.Engine) uint64
		caller  uuid.UUID
		bid     core.BidBase
		wantErr error
	}{
		{
			name: "item not found",
			setup: func(ctx context.Context, engine *core.Engine) uint64 {
				return 42
			},
			caller:  bob,
			bid:     core.BidBase{Amount: 100},
			wantErr: core.ErrItemNotFound,
		},
		{
			name: "owner bids on own item",
			setup: func(ctx context.Context, engine *core.Engine) uint64 {
				item, _ := engine.ListItem(ctx, alice, core.ItemBase{IsActive: true})
				return item.ID
			},
			caller:  alice,
			bid:     core.BidBase{Amount: 100},
			wantErr: core.ErrSelfBid,
		},
		{
			// 雙重違規時以自我出價優先回報
			name: "owner bids on own inactive item",
			setup: func(ctx context.Context, engine *core.Engine) uint64 {
				item, _ := engine.ListItem(ctx, alice, core.ItemBase{IsActive: false})
				return item.ID
			},
			caller:  alice,
			bid:     core.BidBase{Amount: 100},
			wantErr: core.ErrSelfBid,
		},
		{
			name: "inactive item",
			setup: func(ctx context.Context, engine *core.Engine) uint64 {
				item, _ := engine.ListItem(ctx, alice, core.ItemBase{IsActive: false})
				return item.ID
			},
			caller:  bob,
			bid:     core.BidBase{Amount: 100},
			wantErr: core.ErrItemInactive,
		},
		{
			// 與目前最高出價相同的金額也必須被拒絕
			name: "bid equal to current highest",
			setup: func(ctx context.Context, engine *core.Engine) uint64 {
				item, _ := engine.ListItem(ctx, alice, core.ItemBase{IsActive: true})
				_, err := engine.BidForAnItem(ctx, bob, item.ID, core.BidBase{Amount: 100})
				require.NoError(t, err)
				return item.ID
			},
			caller:  charlie,
			bid:     core.BidBase{Amount: 100},
			wantErr: core.ErrBidTooLow,
		},
		{
			name: "successful bid",
			setup: func(ctx context.Context, engine *core.Engine) uint64 {
				item, _ := engine.ListItem(ctx, alice, core.ItemBase{IsActive: true})
				return item.ID
			},
			caller:  bob,
			bid:     core.BidBase{Amount: 100, BidDate: 1690001000},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			engine, _ := setupEngine()
			id := tt.setup(ctx, engine)

			got, err := engine.BidForAnItem(ctx, tt.caller, id, tt.bid)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id, got)
		})
	}
}

func TestBidForAnItem_AppendsHistory(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()
	item, err := engine.ListItem(ctx, alice, core.ItemBase{IsActive: true})
	require.NoError(t, err)

	_, err = engine.BidForAnItem(ctx, bob, item.ID, core.BidBase{Amount: 100, BidDate: 1})
	require.NoError(t, err)
	_, err = engine.BidForAnItem(ctx, charlie, item.ID, core.BidBase{Amount: 150, BidDate: 2})
	require.NoError(t, err)

	stored, err := engine.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	// 最高出價永遠等於歷史中最後一筆的金額，歷史金額嚴格遞增
	require.Len(t, stored.Bids, 2)
	assert.Equal(t, uint64(150), stored.HighestBid)
	assert.Equal(t, core.Bid{ItemID: item.ID, Bidder: bob, Amount: 100, BidDate: 1}, stored.Bids[0])
	assert.Equal(t, core.Bid{ItemID: item.ID, Bidder: charlie, Amount: 150, BidDate: 2}, stored.Bids[1])
}

func TestEditItem(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()
	item, err := engine.ListItem(ctx, alice, core.ItemBase{
		Description:  "old description",
		ResultDate:   100,
		IsActive:     true,
		LatestUpdate: 10,
	})
	require.NoError(t, err)
	_, err = engine.BidForAnItem(ctx, bob, item.ID, core.BidBase{Amount: 50, BidDate: 11})
	require.NoError(t, err)

	updated, err := engine.EditItem(ctx, alice, item.ID, core.ItemBase{
		Description:  "new description",
		ResultDate:   200,
		IsActive:     false,
		LatestUpdate: 20,
	})
	require.NoError(t, err)

	// 僅覆寫呼叫端提供的欄位，出價相關狀態不受影響
	assert.Equal(t, "new description", updated.Description)
	assert.Equal(t, uint64(200), updated.ResultDate)
	assert.False(t, updated.IsActive)
	assert.Equal(t, uint64(20), updated.LatestUpdate)
	assert.Equal(t, item.ID, updated.ID)
	assert.Equal(t, alice, updated.Owner)
	assert.Equal(t, uint64(50), updated.HighestBid)
	require.Len(t, updated.Bids, 1)

	stored, err := engine.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, updated, *stored)
}

func TestEditItem_NotFound(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()
	_, err := engine.EditItem(ctx, alice, 7, core.ItemBase{})
	assert.ErrorIs(t, err, core.ErrItemNotFound)
}

func TestEditItem_Unauthorized(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()
	item, err := engine.ListItem(ctx, alice, core.ItemBase{Description: "original", IsActive: true})
	require.NoError(t, err)

	_, err = engine.EditItem(ctx, bob, item.ID, core.ItemBase{Description: "hijacked"})
	assert.ErrorIs(t, err, core.ErrNotOwner)

	// 授權失敗後儲存的值必須與呼叫前完全相同
	stored, err := engine.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, item, *stored)
}

func TestEditItem_Reactivate(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()
	item, err := engine.ListItem(ctx, alice, core.ItemBase{IsActive: true})
	require.NoError(t, err)

	// 停止刊登後 edit 是唯一能重新開放出價的操作
	_, err = engine.EditItem(ctx, alice, item.ID, core.ItemBase{IsActive: false})
	require.NoError(t, err)
	_, err = engine.BidForAnItem(ctx, bob, item.ID, core.BidBase{Amount: 100})
	assert.ErrorIs(t, err, core.ErrItemInactive)

	_, err = engine.EditItem(ctx, alice, item.ID, core.ItemBase{IsActive: true})
	require.NoError(t, err)
	_, err = engine.BidForAnItem(ctx, bob, item.ID, core.BidBase{Amount: 100})
	assert.NoError(t, err)
}

func TestStopListing(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()
	item, err := engine.ListItem(ctx, alice, core.ItemBase{Description: "keep me", ResultDate: 99, IsActive: true, LatestUpdate: 5})
	require.NoError(t, err)

	stopped, err := engine.StopListing(ctx, alice, item.ID)
	require.NoError(t, err)
	assert.False(t, stopped.IsActive)

	// 除了 is_active 以外的欄位都保持原狀
	expected := item
	expected.IsActive = false
	assert.Equal(t, expected, stopped)

	// 對已停止的物品重複呼叫同樣成功且狀態不變
	again, err := engine.StopListing(ctx, alice, item.ID)
	require.NoError(t, err)
	assert.Equal(t, stopped, again)
}

func TestStopListing_Unauthorized(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()
	item, err := engine.ListItem(ctx, alice, core.ItemBase{IsActive: true})
	require.NoError(t, err)

	_, err = engine.StopListing(ctx, bob, item.ID)
	assert.ErrorIs(t, err, core.ErrNotOwner)

	stored, err := engine.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, item, *stored)
}

func TestStopListing_NotFound(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()
	_, err := engine.StopListing(ctx, alice, 3)
	assert.ErrorIs(t, err, core.ErrItemNotFound)
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()
	item, err := engine.ListItem(ctx, alice, core.ItemBase{IsActive: true})
	require.NoError(t, err)

	deleted, err := engine.DeleteItem(ctx, alice, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, deleted)

	stored, err := engine.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestDeleteItem_Unauthorized(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()
	item, err := engine.ListItem(ctx, alice, core.ItemBase{IsActive: true})
	require.NoError(t, err)

	_, err = engine.DeleteItem(ctx, bob, item.ID)
	assert.ErrorIs(t, err, core.ErrNotOwner)

	// 物品仍可取回且內容不變
	stored, err := engine.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, item, *stored)
}

func TestDeleteItem_NotFound(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()
	_, err := engine.DeleteItem(ctx, alice, 11)
	assert.ErrorIs(t, err, core.ErrItemNotFound)
}

func TestGetAllItems(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()

	first, err := engine.ListItem(ctx, alice, core.ItemBase{Description: "first", IsActive: true})
	require.NoError(t, err)
	second, err := engine.ListItem(ctx, bob, core.ItemBase{Description: "second", IsActive: false})
	require.NoError(t, err)

	all, err := engine.GetAllItems(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first, all[first.ID])
	assert.Equal(t, second, all[second.ID])
}

// 規格化的完整情境：建立、競價、等額拒絕、更高出價、停止刊登、拒絕出價
func TestAuctionScenario(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine()

	item, err := engine.ListItem(ctx, alice, core.ItemBase{Description: "painting", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), item.HighestBid)

	_, err = engine.BidForAnItem(ctx, bob, item.ID, core.BidBase{Amount: 100})
	require.NoError(t, err)
	stored, _ := engine.GetItem(ctx, item.ID)
	assert.Equal(t, uint64(100), stored.HighestBid)

	_, err = engine.BidForAnItem(ctx, charlie, item.ID, core.BidBase{Amount: 100})
	assert.ErrorIs(t, err, core.ErrBidTooLow)

	_, err = engine.BidForAnItem(ctx, charlie, item.ID, core.BidBase{Amount: 150})
	require.NoError(t, err)
	stored, _ = engine.GetItem(ctx, item.ID)
	assert.Equal(t, uint64(150), stored.HighestBid)
	require.Len(t, stored.Bids, 2)
	assert.Equal(t, uint64(100), stored.Bids[0].Amount)
	assert.Equal(t, uint64(150), stored.Bids[1].Amount)

	_, err = engine.StopListing(ctx, alice, item.ID)
	require.NoError(t, err)

	_, err = engine.BidForAnItem(ctx, bob, item.ID, core.BidBase{Amount: 200})
	assert.ErrorIs(t, err, core.ErrItemInactive)
}
