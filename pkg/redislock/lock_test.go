package redislock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNew_Prefix(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer rdb.Close()

	assert.Equal(t, "facility-booking:reaper", New(rdb, " facility-booking ").key("reaper"))
	assert.Equal(t, "lock:reaper", New(rdb, "").key("reaper"))
}

func TestObtain_BackendUnavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	defer rdb.Close()

	_, err := New(rdb, "test").Obtain(context.Background(), "reaper", time.Second)

	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotObtained))
}
