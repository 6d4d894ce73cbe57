package get_time_configs

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/timeconfigs/models"
)

type TimeConfigService interface {
	List(ctx context.Context, req *models.ListTimeConfigsRequest) (*models.TimeConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
