package redis

import (
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/vmihailenco/msgpack/v5"

	"gavel/core"
)

func setupTest(t *testing.T) (*redis.Client, redismock.ClientMock, func()) {
	db, mock := redismock.NewClientMock()
	return db, mock, func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	}
}

// encodeItem 產生與 Store 寫入格式一致的 msgpack 負載
func encodeItem(t *testing.T, item core.Item) string {
	payload, err := msgpack.Marshal(item)
	assert.NoError(t, err)
	return string(payload)
}
