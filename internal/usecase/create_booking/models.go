package create_booking

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// Request модель запроса на создание заказа
type Request struct {
	UserID     string              // ID пользователя, создающего заказ
	FacilityID string              // ID площадки
	Times      []RequestedInterval // Запрошенные интервалы, не больше MaxSlotsPerOrder
	Stories    []StoryRequest      // Пожелания к заказу (опционально)
}

// RequestedInterval один запрошенный интервал
type RequestedInterval struct {
	Date  time.Time        // Дата (без времени)
	Start types.TimeString // Начало, "HH:MM"
	End   types.TimeString // Конец, "HH:MM"
}

// StoryRequest пожелание: шаблон и/или текст
type StoryRequest struct {
	TemplateID *string
	Message    *string
	Priority   int
}

// Response модель ответа с созданным заказом
type Response struct {
	ID         string
	OrderNo    string
	FacilityID string
	Amount     domain.Money
	Status     string
	Type       string
	Times      []BookedSlot // Слоты после удаления дублей
	CreatedAt  time.Time
}

// BookedSlot забронированный слот с ценой
type BookedSlot struct {
	Date  time.Time
	Start types.TimeString
	End   types.TimeString
	Price domain.Money
}
