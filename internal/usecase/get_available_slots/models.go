package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// Request модель запроса на получение сетки слотов
type Request struct {
	FacilityID string    // ID площадки
	Date       time.Time // Дата (без времени)
}

// Response модель ответа с сеткой слотов на день
type Response struct {
	FacilityID string
	Date       time.Time
	Step       int     // Шаг сетки в минутах
	Points     []Point // Точки сетки после фильтра по времени
}

// Point одна точка сетки
// Доступность и цена по умолчанию независимы друг от друга
type Point struct {
	Time           types.TimeString // Начало слота, "HH:MM"
	DateTime       time.Time        // Дата и время начала слота
	Price          domain.Money     // Цена слота
	IsAvailable    bool             // false, если точка попадает в закрытое окно
	IsDefaultPrice bool             // true, если цена равна цене по умолчанию
}

// Bookable оставляет точки, доступные для бронирования:
// свободные и с ценой, заданной правилом
func (r *Response) Bookable() []Point {
	result := make([]Point, 0, len(r.Points))
	for _, p := range r.Points {
		if p.IsAvailable && !p.IsDefaultPrice {
			result = append(result, p)
		}
	}
	return result
}
