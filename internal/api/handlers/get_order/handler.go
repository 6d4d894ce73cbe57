package get_order

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/orders"
)

const (
	msgNotFound      = "заказ не найден"
	msgMissingUserID = "отсутствует ID пользователя"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/orders/{orderId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /orders/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			h.logger.Warn("GET /orders/{id} - Order not found: order_id=%s, user_id=%s", orderID, userID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /orders/{id} - Failed to get order: order_id=%s, error=%v", orderID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /orders/{id} - Order retrieved successfully: order_id=%s, user_id=%s", orderID, userID)
	handlers.RespondJSON(w, http.StatusOK, order)
}
