package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	facilityRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/facility"
	orderRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/order"
	templateRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/template"
	userClient "github.com/m04kA/SMC-FacilityBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/pricing"
	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

// UseCase use case для создания заказа на слоты площадки
type UseCase struct {
	orderRepo    OrderRepository
	facilityRepo FacilityRepository
	templateRepo TemplateRepository
	userClient   UserServiceClient
	guard        *Guard
	prices       PriceResolver
	publisher    NotifyPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	facilityRepo FacilityRepository,
	templateRepo TemplateRepository,
	userClient UserServiceClient,
	guard *Guard,
	prices PriceResolver,
	publisher NotifyPublisher,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		orderRepo:    orderRepo,
		facilityRepo: facilityRepo,
		templateRepo: templateRepo,
		userClient:   userClient,
		guard:        guard,
		prices:       prices,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания заказа
// Проверка интервалов и запись заказа со слотами идут в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, facility=%s, intervals=%d, stories=%d",
		req.UserID, req.FacilityID, len(req.Times), len(req.Stories))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	intervals := make([]RequestedInterval, len(req.Times))
	for i, iv := range req.Times {
		iv.Date = domain.DateOnly(iv.Date, now.Location())
		intervals[i] = iv
	}

	// 3. Проверяем площадку
	if err := uc.checkFacility(ctx, req.FacilityID); err != nil {
		return nil, err
	}

	// 4. Проверяем пользователя
	if _, err := uc.userClient.GetUser(ctx, req.UserID); err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%s not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// 5. Проверяем шаблоны пожеланий
	if err := uc.checkTemplates(ctx, req.Stories); err != nil {
		return nil, err
	}

	var result *domain.Order

	// 6. Выполняем проверки и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Лимит, дубли, сетка, закрытые окна, живые слоты
		normalized, err := uc.guard.Validate(txCtx, req.FacilityID, intervals, now)
		if err != nil {
			uc.logger.Warn("CreateBooking: guard rejected request: %v", err)
			return err
		}

		// 6.2. Цены, по одной таблице на дату
		slots, err := uc.priceSlots(txCtx, req.FacilityID, normalized)
		if err != nil {
			return err
		}

		// 6.3. Сохраняем заказ, слоты и пожелания
		order := domain.NewOrder(req.FacilityID, req.UserID, slots, toDomainStories(req.Stories), now)
		created, err := uc.orderRepo.Create(txCtx, order)
		if err != nil {
			if errors.Is(err, orderRepo.ErrConflict) {
				return fmt.Errorf("%w: %v", ErrTimeConflict, err)
			}
			uc.logger.Error("CreateBooking: failed to create order: %v", err)
			return fmt.Errorf("%w: failed to create order: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrConflict) {
			uc.logger.Warn("CreateBooking: concurrent booking lost the race: %v", err)
			return nil, fmt.Errorf("%w: concurrent booking, retry with fresh availability", ErrTimeConflict)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created order id=%s, no=%s, amount=%s",
		result.ID, result.OrderNo, result.Amount)

	// 7. Уведомление после коммита, ошибка публикации не отменяет заказ
	if intent := domain.NewNotifyIntent(result); intent != nil {
		if err := uc.publisher.Publish(ctx, intent); err != nil {
			uc.logger.Error("CreateBooking: failed to publish notify intent for order id=%s: %v", result.ID, err)
		}
	}

	return toResponse(result), nil
}

func (uc *UseCase) checkFacility(ctx context.Context, facilityID string) error {
	facility, err := uc.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("CreateBooking: facility id=%s not found", facilityID)
			return ErrFacilityNotFound
		}
		uc.logger.Error("CreateBooking: failed to get facility id=%s: %v", facilityID, err)
		return fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}
	if !facility.Active {
		uc.logger.Warn("CreateBooking: facility id=%s is inactive", facilityID)
		return ErrFacilityNotFound
	}
	return nil
}

func (uc *UseCase) checkTemplates(ctx context.Context, stories []StoryRequest) error {
	for _, story := range stories {
		if story.TemplateID == nil || *story.TemplateID == "" {
			continue
		}
		template, err := uc.templateRepo.GetByID(ctx, *story.TemplateID)
		if err != nil {
			if errors.Is(err, templateRepo.ErrTemplateNotFound) {
				uc.logger.Warn("CreateBooking: template id=%s not found", *story.TemplateID)
				return fmt.Errorf("%w: %s", ErrTemplateNotFound, *story.TemplateID)
			}
			uc.logger.Error("CreateBooking: failed to get template id=%s: %v", *story.TemplateID, err)
			return fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
		}
		if !template.Active {
			uc.logger.Warn("CreateBooking: template id=%s is inactive", *story.TemplateID)
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, *story.TemplateID)
		}
	}
	return nil
}

func (uc *UseCase) priceSlots(ctx context.Context, facilityID string, intervals []RequestedInterval) ([]domain.Slot, error) {
	tables := make(map[string]*pricing.PriceTable)
	slots := make([]domain.Slot, 0, len(intervals))

	for _, iv := range intervals {
		dateKey := iv.Date.Format(domain.DateFormat)
		table, ok := tables[dateKey]
		if !ok {
			var err error
			table, err = uc.prices.Load(ctx, facilityID, iv.Date)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to load prices for date=%s: %v", dateKey, err)
				return nil, fmt.Errorf("%w: failed to load prices: %v", ErrInternal, err)
			}
			tables[dateKey] = table
		}

		slots = append(slots, domain.Slot{
			Date:      iv.Date,
			Window:    domain.TimeWindow{Start: iv.Start, End: iv.End},
			UnitPrice: table.Price(iv.Start),
		})
	}

	return slots, nil
}

func toDomainStories(stories []StoryRequest) []domain.Story {
	result := make([]domain.Story, len(stories))
	for i, s := range stories {
		result[i] = domain.Story{
			TemplateID: s.TemplateID,
			Message:    s.Message,
			Priority:   s.Priority,
		}
	}
	return result
}

func toResponse(order *domain.Order) *Response {
	times := make([]BookedSlot, len(order.Slots))
	for i, slot := range order.Slots {
		times[i] = BookedSlot{
			Date:  slot.Date,
			Start: slot.Window.Start,
			End:   slot.Window.End,
			Price: slot.UnitPrice,
		}
	}

	return &Response{
		ID:         order.ID,
		OrderNo:    order.OrderNo,
		FacilityID: order.FacilityID,
		Amount:     order.Amount,
		Status:     string(order.Status),
		Type:       string(order.Type),
		Times:      times,
		CreatedAt:  order.CreatedAt,
	}
}
