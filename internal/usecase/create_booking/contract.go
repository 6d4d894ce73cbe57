package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/pricing"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	// Create сохраняет заказ вместе со слотами и пожеланиями
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// GetActiveAt возвращает активные слоты площадки, начинающиеся в start на дату date
	GetActiveAt(ctx context.Context, facilityID string, date time.Time, start types.TimeString) ([]*domain.SlotOccupancy, error)
}

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Facility, error)
}

// TemplateRepository интерфейс репозитория шаблонов контента
type TemplateRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Template, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID string) (*userservice.User, error)
}

// WindowCatalog интерфейс каталога закрытых окон
type WindowCatalog interface {
	RejectedWindows(ctx context.Context, facilityID string, date, now time.Time) ([]domain.TimeWindow, error)
}

// PriceResolver интерфейс резолвера цен
type PriceResolver interface {
	Load(ctx context.Context, facilityID string, date time.Time) (*pricing.PriceTable, error)
}

// NotifyPublisher интерфейс публикации уведомлений о смене статуса заказа
type NotifyPublisher interface {
	Publish(ctx context.Context, intent *domain.NotifyIntent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время в часовом поясе площадок
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
