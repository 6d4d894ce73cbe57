package notifier

import "time"

// EventTypeStatusChanged тип события в заголовке event_type
const EventTypeStatusChanged = "order.status.changed.v1"

// StatusChangedEvent тело сообщения о смене статуса заказа
type StatusChangedEvent struct {
	EventID     string    `json:"eventId"`
	OrderID     string    `json:"orderId"`
	OrderNo     string    `json:"orderNo"`
	RecipientID string    `json:"recipientId"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	OccurredAt  time.Time `json:"occurredAt"`
}
