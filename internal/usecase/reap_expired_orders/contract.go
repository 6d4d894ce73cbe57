package reap_expired_orders

import (
	"context"
	"time"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	// CancelExpired отменяет активные NEW заказы, созданные раньше createdBefore, и возвращает их ID
	CancelExpired(ctx context.Context, createdBefore, now time.Time) ([]string, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
