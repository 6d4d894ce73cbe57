package get_time_configs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/timeconfigs"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/timeconfigs/models"
)

const (
	msgInvalidFilter = "некорректный фильтр"
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

// Handle GET /api/v1/time-configs
// Query params: type (NOT_USE | SPECIAL), date (YYYY-MM-DD), includeInactive (bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListTimeConfigsRequest{}

	if v := query.Get("type"); v != "" {
		req.Type = &v
	}
	if v := query.Get("date"); v != "" {
		req.Date = &v
	}
	if v := query.Get("includeInactive"); v != "" {
		includeInactive, err := strconv.ParseBool(v)
		if err != nil {
			h.logger.Warn("GET /time-configs - Invalid includeInactive: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.IncludeInactive = includeInactive
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, timeconfigs.ErrInvalidInput) {
			h.logger.Warn("GET /time-configs - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /time-configs - Failed to list time configs: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /time-configs - Time configs retrieved successfully: count=%d", len(result.TimeConfigs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
