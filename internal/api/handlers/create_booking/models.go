package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	FacilityID string         `json:"facilityId"`
	Times      []TimeRequest  `json:"times"`
	Stories    []StoryRequest `json:"stories,omitempty"`
}

// TimeRequest запрошенный интервал
type TimeRequest struct {
	Date      string `json:"date"`      // "2025-03-11"
	StartTime string `json:"startTime"` // "06:30"
	EndTime   string `json:"endTime"`   // "07:00"
}

// StoryRequest пожелание к заказу
type StoryRequest struct {
	TemplateID *string `json:"templateId,omitempty"`
	Message    *string `json:"message,omitempty"`
	Priority   int     `json:"priority"`
}

// OrderResponse HTTP response model
type OrderResponse struct {
	ID         string         `json:"id"`
	OrderNo    string         `json:"orderNo"`
	FacilityID string         `json:"facilityId"`
	Amount     string         `json:"amount"`
	Status     string         `json:"status"`
	Type       string         `json:"type"`
	Times      []TimeResponse `json:"times"`
	CreatedAt  string         `json:"createdAt"`
}

// TimeResponse забронированный слот
type TimeResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Price     string `json:"price"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дат и времени)
func (r *CreateOrderRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	times := make([]createBooking.RequestedInterval, len(r.Times))
	for i, t := range r.Times {
		date, err := time.Parse(domain.DateFormat, t.Date)
		if err != nil {
			return nil, fmt.Errorf("times[%d].date: %w", i, err)
		}
		start, err := types.NewTimeStringFromString(t.StartTime)
		if err != nil {
			return nil, fmt.Errorf("times[%d].startTime: %w", i, err)
		}
		end, err := types.NewTimeStringFromString(t.EndTime)
		if err != nil {
			return nil, fmt.Errorf("times[%d].endTime: %w", i, err)
		}
		times[i] = createBooking.RequestedInterval{Date: date, Start: start, End: end}
	}

	stories := make([]createBooking.StoryRequest, len(r.Stories))
	for i, s := range r.Stories {
		stories[i] = createBooking.StoryRequest{
			TemplateID: s.TemplateID,
			Message:    s.Message,
			Priority:   s.Priority,
		}
	}

	return &createBooking.Request{
		UserID:     userID,
		FacilityID: r.FacilityID,
		Times:      times,
		Stories:    stories,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *OrderResponse {
	times := make([]TimeResponse, len(resp.Times))
	for i, t := range resp.Times {
		times[i] = TimeResponse{
			Date:      t.Date.Format(domain.DateFormat),
			StartTime: t.Start.String(),
			EndTime:   t.End.String(),
			Price:     t.Price.String(),
		}
	}

	return &OrderResponse{
		ID:         resp.ID,
		OrderNo:    resp.OrderNo,
		FacilityID: resp.FacilityID,
		Amount:     resp.Amount.String(),
		Status:     resp.Status,
		Type:       resp.Type,
		Times:      times,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}
