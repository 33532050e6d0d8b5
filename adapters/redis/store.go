package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"gavel/core"
)

// Store 實現了 core.IItemStore 介面，將物品以 msgpack 編碼存放於 Redis
// 每個物品佔用一個字串鍵，另以一個 sorted set（分數 = id）作為依 id 排序的索引
type Store struct {
	client  *redis.Client // Redis 客戶端連線
	options StoreOptions  // Store 的配置選項
}

// StoreOptions 定義了 Store 的配置選項
type StoreOptions struct {
	Prefix string
}

type StoreOption func(*StoreOptions)

// WithStorePrefix 設定所有鍵的前綴
func WithStorePrefix(prefix string) StoreOption {
	return func(o *StoreOptions) {
		o.Prefix = prefix
	}
}

// NewStore 建立一個新的 Store 實例
func NewStore(client *redis.Client, opts ...StoreOption) core.IItemStore {
	options := &StoreOptions{}
	for _, opt := range opts {
		opt(options)
	}

	return &Store{
		client:  client,
		options: *options,
	}
}

func (s *Store) itemKey(id uint64) string {
	return s.options.Prefix + "item:" + strconv.FormatUint(id, 10)
}

func (s *Store) indexKey() string {
	return s.options.Prefix + "items"
}

// insertScript 原子性地寫入物品並維護索引
//
//	KEYS[1] - 物品鍵
//	KEYS[2] - 索引 sorted set
//	ARGV[1] - 物品 id，同時作為索引的分數與成員
//	ARGV[2] - msgpack 編碼後的物品
//
// 返回值: 被取代的舊值，不存在時為 nil
var insertScript = redis.NewScript(`
local prev = redis.call('GET', KEYS[1])
redis.call('SET', KEYS[1], ARGV[2])
redis.call('ZADD', KEYS[2], ARGV[1], ARGV[1])
if prev then
    return prev
end
return false
`)

// removeScript 原子性地移除物品並維護索引
//
//	KEYS[1] - 物品鍵
//	KEYS[2] - 索引 sorted set
//	ARGV[1] - 物品 id
//
// 返回值: 被移除的值，不存在時為 nil
var removeScript = redis.NewScript(`
local prev = redis.call('GET', KEYS[1])
redis.call('DEL', KEYS[1])
redis.call('ZREM', KEYS[2], ARGV[1])
if prev then
    return prev
end
return false
`)

// Get 依 id 取得物品，不存在時回傳 nil
func (s *Store) Get(ctx context.Context, id uint64) (*core.Item, error) {
	const op = "redis.Store.Get"
	payload, err := s.client.Get(ctx, s.itemKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get item, err=%w", op, err)
	}
	item, err := decodeItem(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// Insert 無條件寫入物品，回傳先前的值（若存在）
func (s *Store) Insert(ctx context.Context, id uint64, item core.Item) (*core.Item, error) {
	const op = "redis.Store.Insert"
	payload, err := msgpack.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode item, err=%w", op, err)
	}
	prev, err := insertScript.Run(
		ctx, s.client,
		[]string{s.itemKey(id), s.indexKey()},
		strconv.FormatUint(id, 10), string(payload),
	).Text()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute insert script, err=%w", op, err)
	}
	previous, err := decodeItem(prev)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return previous, nil
}

// Remove 移除物品，回傳被移除的值（若存在）
func (s *Store) Remove(ctx context.Context, id uint64) (*core.Item, error) {
	const op = "redis.Store.Remove"
	prev, err := removeScript.Run(
		ctx, s.client,
		[]string{s.itemKey(id), s.indexKey()},
		strconv.FormatUint(id, 10),
	).Text()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute remove script, err=%w", op, err)
	}
	removed, err := decodeItem(prev)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return removed, nil
}

// Enumerate 依 id 升冪列出所有物品
// 排序由索引 sorted set 的分數保證
func (s *Store) Enumerate(ctx context.Context) ([]core.Item, error) {
	const op = "redis.Store.Enumerate"
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read index, err=%w", op, err)
	}
	if len(ids) == 0 {
		return []core.Item{}, nil
	}
	keys := make([]string, len(ids))
	for i, raw := range ids {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid index member %q, err=%w", op, raw, err)
		}
		keys[i] = s.itemKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read items, err=%w", op, err)
	}
	items := make([]core.Item, 0, len(values))
	for _, value := range values {
		payload, ok := value.(string)
		if !ok {
			// 索引與值之間不一致的殘留項目直接略過
			continue
		}
		item, err := decodeItem(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, *item)
	}
	return items, nil
}

func decodeItem(payload string) (*core.Item, error) {
	var item core.Item
	if err := msgpack.Unmarshal([]byte(payload), &item); err != nil {
		return nil, fmt.Errorf("failed to decode item, err=%w", err)
	}
	return &item, nil
}
