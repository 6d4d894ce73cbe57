package domain

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// Slot одна забронированная единица времени площадки
// Window.End - Window.Start всегда равно шагу сетки
type Slot struct {
	ID         int64
	OrderID    string
	FacilityID string
	Date       time.Time
	Window     TimeWindow
	UnitPrice  Money
	Active     bool
}

// SlotOccupancy активный слот вместе со статусом и возрастом заказа-владельца
type SlotOccupancy struct {
	SlotID         int64
	FacilityID     string
	Date           time.Time
	Window         TimeWindow
	OrderID        string
	OrderStatus    OrderStatus
	OrderCreatedAt time.Time
}

// IsLiveAt удерживает ли заказ-владелец этот слот в момент now
func (s *SlotOccupancy) IsLiveAt(now time.Time, holdTimeout time.Duration) bool {
	return IsLive(s.OrderStatus, s.OrderCreatedAt, now, holdTimeout)
}

// StartsAt начинается ли слот в указанное время
func (s *SlotOccupancy) StartsAt(t types.TimeString) bool {
	return s.Window.Start.Equal(t)
}
