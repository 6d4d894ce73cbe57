package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-FacilityBooking/internal/usecase/get_available_slots"
)

const (
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast          = "дата уже прошла"
	msgInvalidBookableOnly = "некорректное значение bookableOnly"
	msgFacilityNotFound    = "площадка не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/available-slots
// Query params: date (required, YYYY-MM-DD), bookableOnly (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID := mux.Vars(r)["facilityId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /facilities/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	bookableOnly := false
	if raw := r.URL.Query().Get("bookableOnly"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /facilities/{id}/available-slots - Invalid bookableOnly: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookableOnly)
			return
		}
		bookableOnly = parsed
	}

	useCaseReq, err := ToUseCaseRequest(facilityID, dateStr)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/available-slots - Facility not found: facility_id=%s", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /facilities/{id}/available-slots - Date in past: facility_id=%s, date=%s", facilityID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /facilities/{id}/available-slots - Failed to get slots: facility_id=%s, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result, bookableOnly)

	h.logger.Info("GET /facilities/{id}/available-slots - Slots retrieved successfully: facility_id=%s, date=%s, slots_count=%d",
		facilityID, dateStr, len(response.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
