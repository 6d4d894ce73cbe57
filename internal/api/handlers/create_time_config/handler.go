package create_time_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/timeconfigs"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/timeconfigs/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service TimeConfigService
	logger  Logger
}

func NewHandler(service TimeConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/time-configs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTimeConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-configs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, timeconfigs.ErrInvalidInput) {
			h.logger.Warn("POST /time-configs - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /time-configs - Failed to create time config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /time-configs - Time config created successfully: id=%d, type=%s", result.ID, result.Type)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
