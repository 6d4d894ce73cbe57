package orders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, comment *string, now time.Time) error
	Deactivate(ctx context.Context, id string, status *domain.OrderStatus, now time.Time) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	DeactivateByOrder(ctx context.Context, orderID string) (int64, error)
}

// NotifyPublisher интерфейс публикации уведомлений о смене статуса заказа
type NotifyPublisher interface {
	Publish(ctx context.Context, intent *domain.NotifyIntent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
