package cache

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	store, err := NewRedisStore(addr)
	if err != nil {
		t.Skipf("Skipping integration test: %v", err)
	}
	defer store.Close()

	key := "bookshelf:test:" + time.Now().Format(time.RFC3339Nano)

	_, err = store.Get(key)
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, store.Set(key, []byte("value"), time.Minute))
	got, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	require.NoError(t, store.Del(key))
	_, err = store.Get(key)
	assert.ErrorIs(t, err, ErrMiss)

	counter := key + ":version"
	defer store.Del(counter)
	n, err := store.Incr(counter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = store.Incr(counter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	raw, err := store.Get(counter)
	require.NoError(t, err)
	assert.Equal(t, "2", string(raw))
}
