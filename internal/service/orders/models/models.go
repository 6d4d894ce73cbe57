package models

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса заказа
type UpdateStatusRequest struct {
	UserID  string  `json:"-"`
	Status  string  `json:"status"`
	Comment *string `json:"comment,omitempty"`
}

// Response модели

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID         string          `json:"id"`
	OrderNo    string          `json:"orderNo"`
	FacilityID string          `json:"facilityId"`
	Amount     string          `json:"amount"` // "62.5"
	Status     string          `json:"status"`
	Type       string          `json:"type"`
	Comment    *string         `json:"comment,omitempty"`
	Times      []TimeResponse  `json:"times"`
	Stories    []StoryResponse `json:"stories"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// TimeResponse слот заказа
type TimeResponse struct {
	Date      string `json:"date"`      // "2025-03-11"
	StartTime string `json:"startTime"` // "06:30"
	EndTime   string `json:"endTime"`
	Price     string `json:"price"`
}

// StoryResponse пожелание к заказу
type StoryResponse struct {
	TemplateID *string `json:"templateId,omitempty"`
	Message    *string `json:"message,omitempty"`
	Priority   int     `json:"priority"`
}

// Методы конвертации

// FromDomainOrder конвертирует domain модель в DTO
func FromDomainOrder(o *domain.Order) *OrderResponse {
	if o == nil {
		return nil
	}

	resp := &OrderResponse{
		ID:         o.ID,
		OrderNo:    o.OrderNo,
		FacilityID: o.FacilityID,
		Amount:     o.Amount.String(),
		Status:     string(o.Status),
		Type:       string(o.Type),
		Comment:    o.Comment,
		Times:      make([]TimeResponse, 0, len(o.Slots)),
		Stories:    make([]StoryResponse, 0, len(o.Stories)),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}

	for _, slot := range o.Slots {
		if !slot.Active {
			continue
		}
		resp.Times = append(resp.Times, TimeResponse{
			Date:      slot.Date.Format(domain.DateFormat),
			StartTime: slot.Window.Start.String(),
			EndTime:   slot.Window.End.String(),
			Price:     slot.UnitPrice.String(),
		})
	}

	for _, story := range o.Stories {
		resp.Stories = append(resp.Stories, StoryResponse{
			TemplateID: story.TemplateID,
			Message:    story.Message,
			Priority:   story.Priority,
		})
	}

	return resp
}
