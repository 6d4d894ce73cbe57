package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus статус заказа
type OrderStatus string

const (
	StatusNew       OrderStatus = "NEW"
	StatusPaid      OrderStatus = "PAID"
	StatusApproved  OrderStatus = "APPROVED"
	StatusRejected  OrderStatus = "REJECTED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// OrderType канал создания заказа
type OrderType string

const (
	OrderTypeB2C OrderType = "B2C"
	OrderTypeB2B OrderType = "B2B"
)

var (
	// ErrInvalidStatus неизвестный статус заказа
	ErrInvalidStatus = errors.New("domain: invalid order status")

	// ErrInvalidTransition недопустимый переход между статусами
	ErrInvalidTransition = errors.New("domain: invalid order status transition")
)

// transitions допустимые переходы конечного автомата заказа
var transitions = map[OrderStatus][]OrderStatus{
	StatusNew:  {StatusPaid, StatusCancelled},
	StatusPaid: {StatusApproved, StatusRejected},
}

// ParseOrderStatus разбирает статус без учета регистра
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusNew, StatusPaid, StatusApproved, StatusRejected, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Transition проверяет переход from -> to и возвращает новый статус
// NEW -> PAID -> APPROVED | REJECTED, NEW -> CANCELLED. Возврата в NEW нет.
func Transition(from, to OrderStatus) (OrderStatus, error) {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return to, nil
		}
	}
	return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// IsLive возвращает true, если заказ с таким статусом и временем создания удерживает свои слоты в момент now
// PAID и APPROVED удерживают всегда, NEW только пока его возраст меньше holdTimeout
func IsLive(status OrderStatus, createdAt, now time.Time, holdTimeout time.Duration) bool {
	switch status {
	case StatusPaid, StatusApproved:
		return true
	case StatusNew:
		return now.Sub(createdAt) < holdTimeout
	default:
		return false
	}
}

// Order заказ на слоты площадки
type Order struct {
	ID         string
	OrderNo    string
	FacilityID string
	CreatedBy  string // ID пользователя, создавшего заказ
	Amount     Money
	Status     OrderStatus
	Type       OrderType
	Comment    *string
	Active     bool

	Slots   []Slot
	Stories []Story

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder создает новый B2C заказ в статусе NEW
// Сумма считается по активным слотам
func NewOrder(facilityID, createdBy string, slots []Slot, stories []Story, now time.Time) *Order {
	order := &Order{
		ID:         uuid.NewString(),
		OrderNo:    NewOrderNo(now),
		FacilityID: facilityID,
		CreatedBy:  createdBy,
		Status:     StatusNew,
		Type:       OrderTypeB2C,
		Active:     true,
		Stories:    stories,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	order.Slots = make([]Slot, len(slots))
	for i, slot := range slots {
		slot.OrderID = order.ID
		slot.FacilityID = facilityID
		slot.Active = true
		order.Slots[i] = slot
	}
	for i := range order.Stories {
		order.Stories[i].OrderID = order.ID
	}

	order.Amount = order.CalculateAmount()
	return order
}

// NewOrderNo генерирует номер заказа вида ORD-YYMMDD-XXXXXX
func NewOrderNo(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", now.Format("060102"), suffix)
}

// CalculateAmount сумма цен активных слотов
func (o *Order) CalculateAmount() Money {
	var total Money
	for _, slot := range o.Slots {
		if slot.Active {
			total += slot.UnitPrice
		}
	}
	return total
}

// IsLiveAt удерживает ли заказ слоты в момент now
func (o *Order) IsLiveAt(now time.Time, holdTimeout time.Duration) bool {
	return o.Active && IsLive(o.Status, o.CreatedAt, now, holdTimeout)
}

// IsB2C заказ создан клиентом из мобильного приложения
func (o *Order) IsB2C() bool {
	return o.Type == OrderTypeB2C
}

// WithStatus возвращает копию заказа с новым статусом, если переход допустим
func (o Order) WithStatus(to OrderStatus, comment *string, now time.Time) (Order, error) {
	status, err := Transition(o.Status, to)
	if err != nil {
		return o, err
	}
	o.Status = status
	if comment != nil {
		o.Comment = comment
	}
	o.UpdatedAt = now
	return o, nil
}

// Story пожелание к заказу: шаблон контента и/или текст
type Story struct {
	ID         int64
	OrderID    string
	TemplateID *string
	Message    *string
	Priority   int
}

// HasTemplate указан ли шаблон
func (s *Story) HasTemplate() bool {
	return s.TemplateID != nil && *s.TemplateID != ""
}

// HasMessage указан ли текст
func (s *Story) HasMessage() bool {
	return s.Message != nil && *s.Message != ""
}
