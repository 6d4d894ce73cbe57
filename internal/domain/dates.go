package domain

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// DateOnly обнуляет время, оставляя дату в часовом поясе loc
func DateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня
// Сравниваются только календарные даты в часовом поясе now
func IsDateInPast(date, now time.Time) bool {
	return DateOnly(date, now.Location()).Before(DateOnly(now, now.Location()))
}

// At возвращает момент времени t в день date, в часовом поясе loc
func At(date time.Time, t types.TimeString, loc *time.Location) time.Time {
	y, m, d := date.Date()
	minutes := t.Minutes()
	return time.Date(y, m, d, 0, minutes, 0, 0, loc)
}
