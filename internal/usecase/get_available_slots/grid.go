package get_available_slots

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/pricing"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/timewindows"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// Grid все точки сетки за сутки с шагом step минут: 00:00, 00:30, ..., 23:30
func Grid(step int) iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		if step <= 0 {
			return
		}
		for m := 0; m < types.MinutesInDay; m += step {
			t, err := types.FromMinutes(m)
			if err != nil {
				return
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Points точки сетки на дату date, начинающиеся позже now + leadTime,
// с отметкой доступности по закрытым окнам и ценой из таблицы.
// Последовательность можно проходить повторно, каждый проход считается заново.
func Points(
	date, now time.Time,
	step int,
	leadTime time.Duration,
	rejected []domain.TimeWindow,
	prices *pricing.PriceTable,
) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		earliest := now.Add(leadTime)
		for t := range Grid(step) {
			dateTime := domain.At(date, t, now.Location())
			if !dateTime.After(earliest) {
				continue
			}

			price := prices.Price(t)
			point := Point{
				Time:           t,
				DateTime:       dateTime,
				Price:          price,
				IsAvailable:    !timewindows.IsRejected(t, rejected),
				IsDefaultPrice: prices.IsDefault(price),
			}
			if !yield(point) {
				return
			}
		}
	}
}
