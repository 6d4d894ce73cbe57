package get_order

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/orders/models"
)

type OrderService interface {
	GetByID(ctx context.Context, id string, userID string) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
