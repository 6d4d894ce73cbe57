package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-FacilityBooking/internal/usecase/get_available_slots"
)

// Флаг доступности в ответе, как его ожидают клиенты
const (
	availableYes = "1"
	availableNo  = "0"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	FacilityID string          `json:"facilityId"`
	Date       string          `json:"date"`
	Step       int             `json:"step"` // Шаг сетки в минутах
	Slots      []AvailableSlot `json:"slots"`
}

// AvailableSlot точка сетки
type AvailableSlot struct {
	Time      string `json:"time"`      // "06:30"
	DateTime  string `json:"dateTime"`  // "2025-03-11 06:30"
	Price     string `json:"price"`     // "50"
	Available string `json:"available"` // "1" или "0"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// bookableOnly оставляет только свободные точки с ценой из правил
func FromUseCaseResponse(resp *getAvailableSlots.Response, bookableOnly bool) *AvailableSlotsResponse {
	points := resp.Points
	if bookableOnly {
		points = resp.Bookable()
	}

	slots := make([]AvailableSlot, len(points))
	for i, p := range points {
		available := availableNo
		if p.IsAvailable {
			available = availableYes
		}
		slots[i] = AvailableSlot{
			Time:      p.Time.String(),
			DateTime:  p.DateTime.Format(domain.DateTimeFormat),
			Price:     p.Price.String(),
			Available: available,
		}
	}

	return &AvailableSlotsResponse{
		FacilityID: resp.FacilityID,
		Date:       resp.Date.Format(domain.DateFormat),
		Step:       resp.Step,
		Slots:      slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(facilityID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		FacilityID: facilityID,
		Date:       date,
	}, nil
}
