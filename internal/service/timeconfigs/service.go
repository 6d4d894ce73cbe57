package timeconfigs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	timeConfigRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/timeconfig"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/timeconfigs/models"
	"github.com/m04kA/SMC-FacilityBooking/pkg/types"
)

// Service сервис администрирования окон закрытия и специальных окон дат
type Service struct {
	timeConfigRepo TimeConfigRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса настроек окон
func NewService(timeConfigRepo TimeConfigRepository, logger Logger) *Service {
	return &Service{
		timeConfigRepo: timeConfigRepo,
		logger:         logger,
	}
}

// Create создает настройку окна
// NOT_USE действует каждый день и может переходить через полночь (23:00-05:00).
// SPECIAL привязан к дате и обязан заканчиваться позже начала.
func (s *Service) Create(ctx context.Context, req *models.CreateTimeConfigRequest) (*models.TimeConfigResponse, error) {
	s.logger.Info("Create: creating time config name=%s, type=%s, %s-%s",
		req.Name, req.Type, req.StartTime, req.EndTime)

	cfg, err := s.toDomain(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.timeConfigRepo.Create(ctx, cfg)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created time config id=%d", created.ID)
	return models.FromDomainTimeConfig(created), nil
}

// GetByID получает настройку окна по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TimeConfigResponse, error) {
	s.logger.Info("GetByID: fetching time config id=%d", id)

	cfg, err := s.timeConfigRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timeConfigRepo.ErrTimeConfigNotFound) {
			s.logger.Warn("GetByID: time config id=%d not found", id)
			return nil, ErrTimeConfigNotFound
		}
		s.logger.Error("GetByID: repository error for time config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTimeConfig(cfg), nil
}

// List возвращает настройки окон по фильтру
func (s *Service) List(ctx context.Context, req *models.ListTimeConfigsRequest) (*models.TimeConfigListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	configs, err := s.timeConfigRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d time configs", len(configs))
	return models.FromDomainTimeConfigList(configs), nil
}

func (s *Service) toDomain(req *models.CreateTimeConfigRequest) (*domain.TimeConfig, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxTimeConfigName {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxTimeConfigName)
	}

	cfgType := domain.TimeConfigType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if !cfgType.IsValid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidInput, req.Type)
	}

	window, err := domain.NewTimeWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if window.Start == types.EndOfDay {
		return nil, fmt.Errorf("%w: window cannot start at %s", ErrInvalidInput, types.EndOfDay)
	}
	if window.Start.Equal(window.End) {
		return nil, fmt.Errorf("%w: empty window %s", ErrInvalidInput, window)
	}

	cfg := &domain.TimeConfig{
		Name:   name,
		Type:   cfgType,
		Window: window,
		Active: true,
	}

	switch cfgType {
	case domain.TimeConfigSpecial:
		if req.Date == nil {
			return nil, fmt.Errorf("%w: date is required for %s", ErrInvalidInput, cfgType)
		}
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, *req.Date)
		}
		if !window.Start.IsBefore(window.End) {
			return nil, fmt.Errorf("%w: special window must end after it starts", ErrInvalidInput)
		}
		cfg.Date = &date
	case domain.TimeConfigNotUse:
		if req.Date != nil {
			return nil, fmt.Errorf("%w: date is not allowed for %s", ErrInvalidInput, cfgType)
		}
	}

	return cfg, nil
}
