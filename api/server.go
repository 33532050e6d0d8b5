package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"gavel/adapters/feed"
	"gavel/adapters/memory"
	postgresAdapter "gavel/adapters/postgres"
	redisAdapter "gavel/adapters/redis"
	"gavel/core"
)

type ServerImpl struct {
	engine      *core.Engine
	feed        feed.IManager
	htmlChecker *bluemonday.Policy
	redisClient *redis.Client

	// 引擎的操作必須逐一執行完畢才能開始下一個，序列化由傳輸層負責
	mu sync.Mutex

	config ServerConfig
}

// MessageResponse 是帶有說明文字的回應主體
type MessageResponse struct {
	Message *string `json:"message,omitempty"`
}

// DeletedResponse 是刪除成功時的回應主體，帶有被移除的物品 id
type DeletedResponse struct {
	ID      uint64  `json:"id"`
	Message *string `json:"message,omitempty"`
}

// BidAcceptedResponse 是出價成功時的回應主體，帶有目標物品 id
type BidAcceptedResponse struct {
	ItemID  uint64  `json:"itemId"`
	Message *string `json:"message,omitempty"`
}

func NewServer(config ServerConfig) (*ServerImpl, error) {
	const op = "NewServer"

	impl := &ServerImpl{
		feed:        feed.NewManager(slog.Default()),
		htmlChecker: bluemonday.UGCPolicy(),
		config:      config,
	}

	// 依設定初始化耐久儲存層
	var (
		items   core.IItemStore
		counter core.ICounterCell
	)
	switch config.Store.Backend {
	case StoreBackendMemory:
		items = memory.NewStore()
		counter = memory.NewCounter()
	case StoreBackendRedis:
		impl.redisClient = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		items = redisAdapter.NewStore(impl.redisClient, redisAdapter.WithStorePrefix(config.Redis.KeyPrefix))
		counter = redisAdapter.NewCounter(impl.redisClient, redisAdapter.WithStorePrefix(config.Redis.KeyPrefix))
	case StoreBackendPostgres:
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s", config.DB.User, config.DB.Password, config.DB.Host, config.DB.Port, config.DB.Database, config.DB.Schema)
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError: true,
			NamingStrategy: schema.NamingStrategy{
				TablePrefix: config.DB.Schema + ".",
			},
		})
		if err != nil {
			return nil, fmt.Errorf("[%s] Fail to connect to database, err=%w", op, err)
		}
		items = postgresAdapter.NewStore(db)
		counter = postgresAdapter.NewCounter(db, postgresAdapter.DefaultCounterName)
	default:
		return nil, fmt.Errorf("[%s] Unknown store backend: %s", op, config.Store.Backend)
	}
	impl.engine = core.NewEngine(items, counter)

	return impl, nil
}

func (impl *ServerImpl) Start() {
	// 啟動出價事件廣播
	impl.feed.Start()
}

func (impl *ServerImpl) Close() {
	// 關閉出價事件廣播
	impl.feed.Done()
	// 關閉Redis連線
	if impl.redisClient != nil {
		if err := impl.redisClient.Close(); err != nil {
			slog.Warn("Fail to close redis client", slog.Any("error", err))
		}
	}
}

// RegisterRoutes 將所有拍賣操作掛載到router上
func (impl *ServerImpl) RegisterRoutes(router *gin.Engine) {
	router.GET("/auction/items", impl.GetAllItems)
	router.GET("/auction/item/:itemID", impl.GetItem)
	router.POST("/auction/item", impl.ListItem)
	router.PUT("/auction/item/:itemID", impl.EditItem)
	router.POST("/auction/item/:itemID/stop", impl.StopListing)
	router.DELETE("/auction/item/:itemID", impl.DeleteItem)
	router.POST("/auction/item/:itemID/bids", impl.BidForAnItem)
	router.GET("/auction/item/:itemID/events", impl.StreamEvents)
}

// callerIdentity 從存取權杖解析呼叫者身分
// 權杖可由 access_token cookie 或 Authorization header 提供
func (impl *ServerImpl) callerIdentity(c *gin.Context) (uuid.UUID, bool) {
	const op = "callerIdentity"
	tokenString, err := c.Cookie("access_token")
	if err != nil || tokenString == "" {
		tokenString = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	if tokenString == "" {
		return uuid.Nil, false
	}
	token, err := ParseAndValidateJWT(tokenString, impl.config.Auth.PublicKey)
	if err != nil {
		slog.Error("Fail to parse and validate JWT", slog.String("op", op), slog.Any("error", err))
		return uuid.Nil, false
	}
	caller, err := uuid.Parse(token.Subject)
	if err != nil {
		slog.Error("Invalid subject in JWT", slog.String("op", op), slog.Any("error", err))
		return uuid.Nil, false
	}
	return caller, true
}

// itemIDParam 解析路徑中的物品 id
func itemIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("itemID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: lo.ToPtr("Invalid item id")})
		return 0, false
	}
	return id, true
}

// errorResponse 將引擎的錯誤種類對應到HTTP狀態碼與訊息
func errorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrItemNotFound):
		c.JSON(http.StatusNotFound, MessageResponse{Message: lo.ToPtr("Item could not be found.")})
	case errors.Is(err, core.ErrNotOwner):
		c.JSON(http.StatusForbidden, MessageResponse{Message: lo.ToPtr("You are not authorized to edit this item.")})
	case errors.Is(err, core.ErrSelfBid):
		c.JSON(http.StatusForbidden, MessageResponse{Message: lo.ToPtr("You cannot bid for your own item.")})
	case errors.Is(err, core.ErrItemInactive):
		c.JSON(http.StatusGone, MessageResponse{Message: lo.ToPtr("The selected item is not actively listed.")})
	case errors.Is(err, core.ErrBidTooLow):
		c.JSON(http.StatusBadRequest, MessageResponse{Message: lo.ToPtr("Your bid cannot be lower than the current highest bid.")})
	default:
		slog.Error("Unexpected engine error", slog.Any("error", err))
		c.Status(http.StatusInternalServerError)
	}
}

// Get all auction items
// (GET /auction/items)
func (impl *ServerImpl) GetAllItems(c *gin.Context) {
	impl.mu.Lock()
	items, err := impl.engine.GetAllItems(c.Request.Context())
	impl.mu.Unlock()
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get a single auction item
// (GET /auction/item/{itemID})
func (impl *ServerImpl) GetItem(c *gin.Context) {
	id, ok := itemIDParam(c)
	if !ok {
		return
	}
	impl.mu.Lock()
	item, err := impl.engine.GetItem(c.Request.Context(), id)
	impl.mu.Unlock()
	if err != nil {
		errorResponse(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: lo.ToPtr("Item could not be found.")})
		return
	}
	c.JSON(http.StatusOK, item)
}

// List a new auction item
// (POST /auction/item)
func (impl *ServerImpl) ListItem(c *gin.Context) {
	caller, ok := impl.callerIdentity(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}
	var base core.ItemBase
	if err := c.ShouldBindJSON(&base); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: lo.ToPtr("Invalid request body")})
		return
	}
	// 處理拍賣描述
	base.Description = impl.htmlChecker.Sanitize(base.Description)

	impl.mu.Lock()
	item, err := impl.engine.ListItem(c.Request.Context(), caller, base)
	impl.mu.Unlock()
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Edit an auction item
// (PUT /auction/item/{itemID})
func (impl *ServerImpl) EditItem(c *gin.Context) {
	caller, ok := impl.callerIdentity(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}
	id, ok := itemIDParam(c)
	if !ok {
		return
	}
	var base core.ItemBase
	if err := c.ShouldBindJSON(&base); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: lo.ToPtr("Invalid request body")})
		return
	}
	base.Description = impl.htmlChecker.Sanitize(base.Description)

	impl.mu.Lock()
	item, err := impl.engine.EditItem(c.Request.Context(), caller, id, base)
	impl.mu.Unlock()
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Stop an auction listing
// (POST /auction/item/{itemID}/stop)
func (impl *ServerImpl) StopListing(c *gin.Context) {
	caller, ok := impl.callerIdentity(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}
	id, ok := itemIDParam(c)
	if !ok {
		return
	}
	impl.mu.Lock()
	item, err := impl.engine.StopListing(c.Request.Context(), caller, id)
	impl.mu.Unlock()
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete an auction item
// (DELETE /auction/item/{itemID})
func (impl *ServerImpl) DeleteItem(c *gin.Context) {
	caller, ok := impl.callerIdentity(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}
	id, ok := itemIDParam(c)
	if !ok {
		return
	}
	impl.mu.Lock()
	deleted, err := impl.engine.DeleteItem(c.Request.Context(), caller, id)
	impl.mu.Unlock()
	if errors.Is(err, core.ErrNotOwner) {
		c.JSON(http.StatusForbidden, MessageResponse{Message: lo.ToPtr("You are not authorized to remove this item.")})
		return
	}
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, DeletedResponse{
		ID:      deleted,
		Message: lo.ToPtr(fmt.Sprintf("Item with id %d removed successfully", deleted)),
	})
}

// Place a bid on an auction item
// (POST /auction/item/{itemID}/bids)
func (impl *ServerImpl) BidForAnItem(c *gin.Context) {
	caller, ok := impl.callerIdentity(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}
	id, ok := itemIDParam(c)
	if !ok {
		return
	}
	var base core.BidBase
	if err := c.ShouldBindJSON(&base); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: lo.ToPtr("Invalid request body")})
		return
	}
	impl.mu.Lock()
	itemID, err := impl.engine.BidForAnItem(c.Request.Context(), caller, id, base)
	impl.mu.Unlock()
	if err != nil {
		errorResponse(c, err)
		return
	}
	slog.Info("Higher bid occurs", slog.String("bidder", caller.String()), slog.Uint64("bid", base.Amount), slog.Uint64("itemID", itemID))
	// 廣播出價事件給事件串流的訂閱者
	if err := impl.feed.Publish(feed.Event{ItemID: itemID, Bidder: caller, Amount: base.Amount, BidDate: base.BidDate}); err != nil {
		slog.Warn("Fail to publish bid event", slog.Any("error", err))
	}
	c.JSON(http.StatusOK, BidAcceptedResponse{
		ItemID:  itemID,
		Message: lo.ToPtr(fmt.Sprintf("Successfully bidded for item %d", itemID)),
	})
}

// Track bid events of an auction item
// (GET /auction/item/{itemID}/events)
func (impl *ServerImpl) StreamEvents(c *gin.Context) {
	const op = "StreamEvents"
	id, ok := itemIDParam(c)
	if !ok {
		return
	}
	// 檢查拍賣物品是否存在
	impl.mu.Lock()
	item, err := impl.engine.GetItem(c.Request.Context(), id)
	impl.mu.Unlock()
	if err != nil {
		errorResponse(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: lo.ToPtr("Item could not be found.")})
		return
	}
	// 請求合法，開始初始化串流
	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Transfer-Encoding", "chunked")
	ch, err := impl.feed.Subscribe(id)
	if err != nil {
		slog.Error("Fail to subscribe to item events", slog.String("op", op), slog.Any("error", err))
		c.Status(http.StatusInternalServerError)
		return
	}
LOOP:
	for {
		select {
		case <-w.CloseNotify():
			impl.feed.Unsubscribe(id, ch)
			break LOOP
		case event, open := <-ch:
			if !open {
				break LOOP
			}
			c.SSEvent("bid", event)
			w.Flush()
		// 30秒沒有事件就發送一個空行，確保中間的代理不會斷開連線
		case <-time.After(30 * time.Second):
			w.WriteString("\n\n")
			w.Flush()
		}
	}
}
