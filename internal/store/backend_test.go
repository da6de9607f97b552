package store

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func TestSQLBackendUpsert(t *testing.T) {
	backend, err := NewSQLBackend(setupTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = backend.Read(ctx, Products)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, backend.Write(ctx, Products, []byte(`[{"id":1}]`)))
	require.NoError(t, backend.Write(ctx, Products, []byte(`[{"id":1},{"id":2}]`)))

	data, err := backend.Read(ctx, Products)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1},{"id":2}]`, string(data))
	assert.Equal(t, "sqlite", backend.Name())
}

func TestSQLBackendThroughStore(t *testing.T) {
	backend, err := NewSQLBackend(setupTestDB(t))
	require.NoError(t, err)
	s := New(backend)
	ctx := context.Background()
	c := NewCollection[item](s, Customers)

	require.NoError(t, c.Put(ctx, []item{{ID: 1, Name: "Lan"}}))
	got, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 1, Name: "Lan"}}, got)
}

const testRedisAddr = "localhost:6379"

func TestRedisBackend(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	prefix := "test:pos:" + time.Now().Format("150405.000000") + ":"
	backend := NewRedisBackend(client, prefix)
	t.Cleanup(func() {
		client.Del(context.Background(), prefix+Orders)
		backend.Close()
	})

	_, err := backend.Read(ctx, Orders)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, backend.Write(ctx, Orders, []byte(`[]`)))
	data, err := backend.Read(ctx, Orders)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}
