package redislock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotObtained блокировка уже удерживается другим владельцем
	ErrNotObtained = errors.New("redislock: lock not obtained")

	// ErrLockLost блокировка истекла или перехвачена до освобождения
	ErrLockLost = errors.New("redislock: lock lost before release")
)

// Удаляет ключ только если значение совпадает с токеном владельца
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker распределенная блокировка на Redis (SET NX PX)
type Locker struct {
	rdb    *redis.Client
	prefix string
}

// New создает Locker; ключи блокировок получают префикс prefix
func New(rdb *redis.Client, prefix string) *Locker {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "lock"
	}
	return &Locker{rdb: rdb, prefix: prefix}
}

// Obtain пытается захватить блокировку на ttl и возвращает токен владельца
func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, l.key(key), token, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("redislock: obtain %s: %w", key, err)
	}
	if !ok {
		return "", ErrNotObtained
	}
	return token, nil
}

// Release освобождает блокировку, если она всё ещё принадлежит token
func (l *Locker) Release(ctx context.Context, key, token string) error {
	res, err := releaseScript.Run(ctx, l.rdb, []string{l.key(key)}, token).Int64()
	if err != nil {
		return fmt.Errorf("redislock: release %s: %w", key, err)
	}
	if res == 0 {
		return ErrLockLost
	}
	return nil
}

func (l *Locker) key(key string) string {
	return l.prefix + ":" + key
}
