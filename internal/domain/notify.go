package domain

// NotifyIntent сигнал о смене статуса заказа для внешней рассылки уведомлений
type NotifyIntent struct {
	RecipientID string
	OrderID     string
	OrderNo     string
	NewStatus   OrderStatus
	Message     string
}

var statusMessages = map[OrderStatus]string{
	StatusNew:       "order created",
	StatusPaid:      "order paid, awaiting review",
	StatusApproved:  "order approved",
	StatusRejected:  "order rejected",
	StatusCancelled: "order cancelled",
}

// StatusMessage текст уведомления для статуса
func StatusMessage(status OrderStatus) string {
	return statusMessages[status]
}

// NewNotifyIntent формирует уведомление владельцу заказа
// Для B2B заказов уведомления не отправляются, возвращается nil
func NewNotifyIntent(order *Order) *NotifyIntent {
	if order == nil || !order.IsB2C() {
		return nil
	}
	return &NotifyIntent{
		RecipientID: order.CreatedBy,
		OrderID:     order.ID,
		OrderNo:     order.OrderNo,
		NewStatus:   order.Status,
		Message:     StatusMessage(order.Status),
	}
}
