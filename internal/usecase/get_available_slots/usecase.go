package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	facilityRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/facility"
)

// UseCase use case для получения сетки слотов площадки на день
type UseCase struct {
	facilityRepo FacilityRepository
	catalog      WindowCatalog
	prices       PriceResolver
	settings     domain.BookingSettings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	facilityRepo FacilityRepository,
	catalog WindowCatalog,
	prices PriceResolver,
	settings domain.BookingSettings,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		facilityRepo: facilityRepo,
		catalog:      catalog,
		prices:       prices,
		settings:     settings,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case получения сетки слотов
// Данные читаются заново на каждый вызов, между вызовами ничего не кешируется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: facility=%s, date=%s", req.FacilityID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date, now.Location())

	// 3. Дата не может быть в прошлом
	if err := validateDate(date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	// 4. Проверяем площадку
	facility, err := uc.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("GetAvailableSlots: facility id=%s not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get facility id=%s: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	if !facility.Active {
		uc.logger.Warn("GetAvailableSlots: facility id=%s is inactive", req.FacilityID)
		return nil, ErrFacilityNotFound
	}

	// 5. Закрытые окна на дату
	rejected, err := uc.catalog.RejectedWindows(ctx, req.FacilityID, date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get rejected windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get rejected windows: %v", ErrInternal, err)
	}

	// 6. Таблица цен на дату
	prices, err := uc.prices.Load(ctx, req.FacilityID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load prices: %v", err)
		return nil, fmt.Errorf("%w: failed to load prices: %v", ErrInternal, err)
	}

	// 7. Сетка с фильтром по времени, доступностью и ценой
	points := slices.Collect(Points(date, now, uc.settings.StepTimeMinutes, uc.settings.LeadTime(), rejected, prices))

	uc.logger.Info("GetAvailableSlots: generated %d points, rejected windows=%d, facility=%s, date=%s",
		len(points), len(rejected), req.FacilityID, date.Format(domain.DateFormat))

	return &Response{
		FacilityID: req.FacilityID,
		Date:       date,
		Step:       uc.settings.StepTimeMinutes,
		Points:     points,
	}, nil
}
