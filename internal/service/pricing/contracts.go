package pricing

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// PricingRepository интерфейс репозитория правил цены
type PricingRepository interface {
	// GetCalendarOverrides возвращает все календарные даты с особым условием цены
	GetCalendarOverrides(ctx context.Context) ([]*domain.CalendarOverride, error)
	// GetRulesByFacility возвращает активные правила цены площадки
	GetRulesByFacility(ctx context.Context, facilityID string) ([]*domain.PriceRule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
