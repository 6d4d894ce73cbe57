package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Request модели

// CreateTimeConfigRequest запрос на создание окна закрытия или специального окна даты
type CreateTimeConfigRequest struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`           // "NOT_USE" или "SPECIAL"
	Date      *string `json:"date,omitempty"` // "2025-03-11", только для SPECIAL
	StartTime string  `json:"startTime"`      // "23:00"
	EndTime   string  `json:"endTime"`        // "05:00"
}

// ListTimeConfigsRequest фильтр списка настроек окон
type ListTimeConfigsRequest struct {
	Type            *string
	Date            *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListTimeConfigsRequest) ToDomainFilter() (domain.TimeConfigFilter, error) {
	filter := domain.TimeConfigFilter{IncludeInactive: r.IncludeInactive}

	if r.Type != nil {
		t := domain.TimeConfigType(*r.Type)
		if !t.IsValid() {
			return filter, fmt.Errorf("unknown type %q", *r.Type)
		}
		filter.Type = &t
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return filter, fmt.Errorf("invalid date %q", *r.Date)
		}
		filter.Date = &date
	}

	return filter, nil
}

// Response модели

// TimeConfigResponse ответ с данными настройки окна
type TimeConfigResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Date      *string   `json:"date,omitempty"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TimeConfigListResponse ответ со списком настроек окон
type TimeConfigListResponse struct {
	TimeConfigs []TimeConfigResponse `json:"timeConfigs"`
}

// Методы конвертации

// FromDomainTimeConfig конвертирует domain модель в DTO
func FromDomainTimeConfig(c *domain.TimeConfig) *TimeConfigResponse {
	if c == nil {
		return nil
	}

	resp := &TimeConfigResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      string(c.Type),
		StartTime: c.Window.Start.String(),
		EndTime:   c.Window.End.String(),
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	if c.Date != nil {
		date := c.Date.Format(domain.DateFormat)
		resp.Date = &date
	}

	return resp
}

// FromDomainTimeConfigList конвертирует список domain моделей в DTO
func FromDomainTimeConfigList(configs []*domain.TimeConfig) *TimeConfigListResponse {
	resp := &TimeConfigListResponse{
		TimeConfigs: make([]TimeConfigResponse, 0, len(configs)),
	}

	for _, c := range configs {
		if item := FromDomainTimeConfig(c); item != nil {
			resp.TimeConfigs = append(resp.TimeConfigs, *item)
		}
	}

	return resp
}
