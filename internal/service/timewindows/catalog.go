package timewindows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// Catalog вычисляет закрытые для бронирования окна площадки на дату
type Catalog struct {
	timeConfigRepo TimeConfigRepository
	slotRepo       SlotRepository
	holdTimeout    time.Duration
	logger         Logger
}

// NewCatalog создает новый экземпляр каталога окон
func NewCatalog(
	timeConfigRepo TimeConfigRepository,
	slotRepo SlotRepository,
	holdTimeout time.Duration,
	logger Logger,
) *Catalog {
	return &Catalog{
		timeConfigRepo: timeConfigRepo,
		slotRepo:       slotRepo,
		holdTimeout:    holdTimeout,
		logger:         logger,
	}
}

// RejectedWindows возвращает отсортированный список закрытых окон площадки на дату:
// окна закрытия с вырезанными специальными окнами даты и окна живых слотов на момент now
func (c *Catalog) RejectedWindows(ctx context.Context, facilityID string, date, now time.Time) ([]domain.TimeWindow, error) {
	blackouts, err := c.timeConfigRepo.GetBlackouts(ctx)
	if err != nil {
		c.logger.Error("RejectedWindows: failed to get blackouts: %v", err)
		return nil, fmt.Errorf("%w: RejectedWindows - get blackouts: %v", ErrInternal, err)
	}

	specials, err := c.timeConfigRepo.GetSpecialByDate(ctx, date)
	if err != nil {
		c.logger.Error("RejectedWindows: failed to get special windows for date=%s: %v",
			date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: RejectedWindows - get special windows: %v", ErrInternal, err)
	}

	slots, err := c.slotRepo.GetActiveByFacilityAndDate(ctx, facilityID, date)
	if err != nil {
		c.logger.Error("RejectedWindows: failed to get slots facility=%s, date=%s: %v",
			facilityID, date.Format(domain.DateFormat), err)
		if errors.Is(err, slotRepo.ErrConflict) {
			return nil, fmt.Errorf("%w: RejectedWindows - get slots: %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: RejectedWindows - get slots: %v", ErrInternal, err)
	}

	rejected := BlackoutWindows(windowsOf(blackouts), windowsOf(filterSpecial(specials, date)))
	rejected = append(rejected, LiveSlotWindows(slots, now, c.holdTimeout)...)

	return MergeWindows(rejected), nil
}

// BlackoutWindows применяет специальные окна даты к окнам закрытия.
// Окно закрытия с концом не позже начала переходит через полночь и делится на две части.
// Если начало специального окна попадает в окно закрытия, закрытая часть заканчивается
// на начале специального окна, а остаток после его конца становится отдельным закрытым окном.
func BlackoutWindows(blackouts, specials []domain.TimeWindow) []domain.TimeWindow {
	result := make([]domain.TimeWindow, 0, len(blackouts))

	for _, blackout := range splitOverMidnight(blackouts) {
		head := blackout
		for _, special := range specials {
			if !blackout.Contains(special.Start) {
				continue
			}
			if special.Start.IsBefore(head.End) {
				head.End = special.Start
			}
			if special.End.IsBefore(blackout.End) {
				result = append(result, domain.TimeWindow{Start: special.End, End: blackout.End})
			}
		}
		result = append(result, head)
	}

	return dropEmpty(result)
}

// LiveSlotWindows окна слотов, заказ которых удерживает их в момент now
func LiveSlotWindows(slots []*domain.SlotOccupancy, now time.Time, holdTimeout time.Duration) []domain.TimeWindow {
	result := make([]domain.TimeWindow, 0, len(slots))
	for _, slot := range slots {
		if slot.IsLiveAt(now, holdTimeout) {
			result = append(result, slot.Window)
		}
	}
	return result
}

// IsRejected попадает ли время в одно из окон: начало окна входит, конец нет
func IsRejected(t types.TimeString, rejected []domain.TimeWindow) bool {
	for _, w := range rejected {
		if w.Contains(t) {
			return true
		}
	}
	return false
}

func splitOverMidnight(windows []domain.TimeWindow) []domain.TimeWindow {
	result := make([]domain.TimeWindow, 0, len(windows))
	for _, w := range windows {
		if w.End.IsAfter(w.Start) {
			result = append(result, w)
			continue
		}
		result = append(result,
			domain.TimeWindow{Start: w.Start, End: types.EndOfDay},
			domain.TimeWindow{Start: "00:00", End: w.End},
		)
	}
	return result
}

func filterSpecial(configs []*domain.TimeConfig, date time.Time) []*domain.TimeConfig {
	result := make([]*domain.TimeConfig, 0, len(configs))
	for _, cfg := range configs {
		if cfg.Active && cfg.AppliesOn(date) {
			result = append(result, cfg)
		}
	}
	return result
}

func windowsOf(configs []*domain.TimeConfig) []domain.TimeWindow {
	result := make([]domain.TimeWindow, 0, len(configs))
	for _, cfg := range configs {
		if !cfg.Active {
			continue
		}
		result = append(result, cfg.Window)
	}
	return result
}

func dropEmpty(windows []domain.TimeWindow) []domain.TimeWindow {
	result := windows[:0]
	for _, w := range windows {
		if !w.IsEmpty() {
			result = append(result, w)
		}
	}
	return result
}
