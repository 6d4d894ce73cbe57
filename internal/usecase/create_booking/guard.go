package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/timewindows"
)

// Guard проверяет пакет запрошенных интервалов перед созданием заказа
type Guard struct {
	catalog  WindowCatalog
	slotRepo SlotRepository
	settings domain.BookingSettings
	logger   Logger
}

// NewGuard создает новый экземпляр проверки интервалов
func NewGuard(catalog WindowCatalog, slotRepo SlotRepository, settings domain.BookingSettings, logger Logger) *Guard {
	return &Guard{
		catalog:  catalog,
		slotRepo: slotRepo,
		settings: settings,
		logger:   logger,
	}
}

// Validate возвращает интервалы без дублей, прошедшие все проверки, или первую ошибку.
// Лимит проверяется до удаления дублей и до любых обращений к хранилищу.
// Слот с истекшим удержанием не мешает: новый заказ просто занимает его.
func (g *Guard) Validate(
	ctx context.Context,
	facilityID string,
	intervals []RequestedInterval,
	now time.Time,
) ([]RequestedInterval, error) {
	// 1. Размер пакета
	if len(intervals) == 0 {
		return nil, fmt.Errorf("%w: at least one interval is required", ErrInvalidInterval)
	}
	if len(intervals) > g.settings.MaxSlotsPerOrder {
		return nil, fmt.Errorf("%w: %d intervals requested, max %d",
			ErrSlotLimitExceeded, len(intervals), g.settings.MaxSlotsPerOrder)
	}

	// 2. Удаляем дубли
	normalized := dedupIntervals(intervals)
	if len(normalized) < len(intervals) {
		g.logger.Info("Guard: facility=%s, dropped %d duplicate intervals", facilityID, len(intervals)-len(normalized))
	}

	// 3. Правила сетки и минимальный запас времени
	for _, iv := range normalized {
		if err := validateInterval(iv, now, g.settings); err != nil {
			return nil, err
		}
	}

	// 4. Закрытые окна, по одному расчету на дату
	rejectedByDate := make(map[string][]domain.TimeWindow)
	for _, iv := range normalized {
		dateKey := iv.Date.Format(domain.DateFormat)
		rejected, ok := rejectedByDate[dateKey]
		if !ok {
			var err error
			rejected, err = g.catalog.RejectedWindows(ctx, facilityID, iv.Date, now)
			if err != nil {
				if errors.Is(err, timewindows.ErrConflict) {
					return nil, fmt.Errorf("%w: Guard - rejected windows: %v", ErrTimeConflict, err)
				}
				return nil, fmt.Errorf("%w: Guard - rejected windows: %v", ErrInternal, err)
			}
			rejectedByDate[dateKey] = rejected
		}

		if timewindows.IsRejected(iv.Start, rejected) {
			return nil, fmt.Errorf("%w: %s %s is not available", ErrTimeConflict, dateKey, iv.Start)
		}
	}

	// 5. Повторная проверка слота с тем же началом
	for _, iv := range normalized {
		occupied, err := g.slotRepo.GetActiveAt(ctx, facilityID, iv.Date, iv.Start)
		if err != nil {
			// параллельный заказ держит блокировку тех же слотов
			if errors.Is(err, slotRepo.ErrConflict) {
				return nil, fmt.Errorf("%w: Guard - active slots: %v", ErrTimeConflict, err)
			}
			return nil, fmt.Errorf("%w: Guard - active slots: %v", ErrInternal, err)
		}
		for _, slot := range occupied {
			if slot.IsLiveAt(now, g.settings.HoldTimeout()) {
				return nil, fmt.Errorf("%w: %s %s is held by order %s",
					ErrTimeConflict, iv.Date.Format(domain.DateFormat), iv.Start, slot.OrderID)
			}
			g.logger.Info("Guard: slot id=%d of order %s (%s) is superseded", slot.SlotID, slot.OrderID, slot.OrderStatus)
		}
	}

	return normalized, nil
}
