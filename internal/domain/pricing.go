package domain

import (
	"strconv"
	"time"
)

// Money денежная сумма
type Money float64

// String десятичная запись без лишних нулей: 50, 12.5
func (m Money) String() string {
	return strconv.FormatFloat(float64(m), 'f', -1, 64)
}

// Условия цены, не привязанные к календарной дате
const (
	ConditionNormal  = "NORMAL"
	ConditionWeekend = "WEEKEND"
)

// PriceRule цена слота площадки в окне времени при заданном условии
type PriceRule struct {
	ID          int64
	FacilityID  string
	Window      TimeWindow
	ConditionID string
	Price       Money
}

// CalendarOverride ежегодная календарная дата (день, месяц) со своим условием цены
// ID используется как ConditionID правил цены
type CalendarOverride struct {
	ID    string
	Day   int
	Month time.Month
}

// Matches совпадает ли дата по дню и месяцу
func (c *CalendarOverride) Matches(date time.Time) bool {
	return date.Day() == c.Day && date.Month() == c.Month
}

// IsWeekend суббота или воскресенье
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WeekdayCondition NORMAL или WEEKEND по дню недели
func WeekdayCondition(date time.Time) string {
	if IsWeekend(date) {
		return ConditionWeekend
	}
	return ConditionNormal
}
