package timeconfigs

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// TimeConfigRepository интерфейс репозитория настроек окон
type TimeConfigRepository interface {
	Create(ctx context.Context, cfg *domain.TimeConfig) (*domain.TimeConfig, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeConfig, error)
	List(ctx context.Context, filter domain.TimeConfigFilter) ([]*domain.TimeConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
