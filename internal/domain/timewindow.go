package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// TimeWindow полуоткрытый интервал времени суток [Start, End)
type TimeWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeWindow создает окно из строк "HH:MM"
func NewTimeWindow(start, end string) (TimeWindow, error) {
	s, err := types.NewTimeStringFromString(start)
	if err != nil {
		return TimeWindow{}, err
	}
	e, err := types.NewTimeStringFromString(end)
	if err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{Start: s, End: e}, nil
}

// Contains true, если t лежит в [Start, End): начало входит, конец нет
func (w TimeWindow) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.Start) && t.IsBefore(w.End)
}

// IsEmpty true, если окно не содержит ни одной минуты
func (w TimeWindow) IsEmpty() bool {
	return !w.Start.IsBefore(w.End)
}

// DurationMinutes длительность окна в минутах
func (w TimeWindow) DurationMinutes() int {
	return w.End.Minutes() - w.Start.Minutes()
}

// Less порядок сортировки (start, end)
func (w TimeWindow) Less(other TimeWindow) bool {
	if !w.Start.Equal(other.Start) {
		return w.Start.IsBefore(other.Start)
	}
	return w.End.IsBefore(other.End)
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("[%s,%s)", w.Start, w.End)
}

// TimeConfigType тип настройки окна
type TimeConfigType string

const (
	// TimeConfigNotUse окно закрытия, действует каждый день
	TimeConfigNotUse TimeConfigType = "NOT_USE"
	// TimeConfigSpecial окно, открытое в конкретную дату внутри окна закрытия
	TimeConfigSpecial TimeConfigType = "SPECIAL"
)

// IsValid проверяет тип
func (t TimeConfigType) IsValid() bool {
	return t == TimeConfigNotUse || t == TimeConfigSpecial
}

// TimeConfig настроенное окно времени
// NOT_USE: окно закрытия без даты, SPECIAL: специальное окно на дату Date
type TimeConfig struct {
	ID        int64
	Name      string
	Type      TimeConfigType
	Date      *time.Time
	Window    TimeWindow
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlackout true для окна закрытия
func (c *TimeConfig) IsBlackout() bool {
	return c.Type == TimeConfigNotUse
}

// AppliesOn true, если специальное окно действует в указанную дату
func (c *TimeConfig) AppliesOn(date time.Time) bool {
	if c.Type != TimeConfigSpecial || c.Date == nil {
		return false
	}
	y1, m1, d1 := c.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// TimeConfigFilter фильтр для списка настроек окон
type TimeConfigFilter struct {
	Type            *TimeConfigType
	Date            *time.Time
	IncludeInactive bool
}
