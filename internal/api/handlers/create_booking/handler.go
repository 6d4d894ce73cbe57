package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeFormat  = "некорректный формат интервала, ожидается дата YYYY-MM-DD и время HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "дата бронирования уже прошла"
	msgInvalidInterval    = "некорректный интервал бронирования"
	msgInvalidStory       = "пожелание должно содержать шаблон или текст"
	msgSlotLimitExceeded  = "превышено количество слотов в заказе"
	msgTimeConflict       = "выбранное время уже занято"
	msgFacilityNotFound   = "площадка не найдена"
	msgUserNotFound       = "пользователь не найден"
	msgTemplateNotFound   = "шаблон не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /orders - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrTimeConflict):
			h.logger.Warn("POST /orders - Time conflict: user_id=%s, facility_id=%s", userID, req.FacilityID)
			handlers.RespondConflict(w, msgTimeConflict)

		case errors.Is(err, createBooking.ErrSlotLimitExceeded):
			h.logger.Warn("POST /orders - Slot limit exceeded: user_id=%s, requested=%d", userID, len(req.Times))
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgSlotLimitExceeded)

		case errors.Is(err, createBooking.ErrFacilityNotFound):
			h.logger.Warn("POST /orders - Facility not found: facility_id=%s", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /orders - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrTemplateNotFound):
			h.logger.Warn("POST /orders - Template not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /orders - Date in past: user_id=%s, facility_id=%s", userID, req.FacilityID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInterval):
			h.logger.Warn("POST /orders - Invalid interval: user_id=%s: %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrInvalidStory):
			h.logger.Warn("POST /orders - Invalid story: user_id=%s: %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidStory)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /orders - Invalid input: user_id=%s: %v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /orders - Failed to create order: user_id=%s, facility_id=%s, error=%v",
				userID, req.FacilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /orders - Order created successfully: order_id=%s, order_no=%s, user_id=%s, slots=%d",
		result.ID, result.OrderNo, userID, len(result.Times))
	handlers.RespondJSON(w, http.StatusCreated, response)
}
