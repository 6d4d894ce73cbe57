package timewindows

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// TimeConfigRepository интерфейс репозитория настроек окон
type TimeConfigRepository interface {
	// GetBlackouts возвращает все активные окна закрытия
	GetBlackouts(ctx context.Context) ([]*domain.TimeConfig, error)
	// GetSpecialByDate возвращает активные специальные окна на дату
	GetSpecialByDate(ctx context.Context, date time.Time) ([]*domain.TimeConfig, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// GetActiveByFacilityAndDate возвращает активные слоты площадки на дату вместе со статусом заказа
	GetActiveByFacilityAndDate(ctx context.Context, facilityID string, date time.Time) ([]*domain.SlotOccupancy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
