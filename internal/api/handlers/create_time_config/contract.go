package create_time_config

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/timeconfigs/models"
)

type TimeConfigService interface {
	Create(ctx context.Context, req *models.CreateTimeConfigRequest) (*models.TimeConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
