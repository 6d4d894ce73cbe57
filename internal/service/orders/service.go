package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	orderRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/order"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/orders/models"
)

// Service сервис для работы с заказами после их создания
type Service struct {
	orderRepo    OrderRepository
	slotRepo     SlotRepository
	publisher    NotifyPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(
	orderRepo OrderRepository,
	slotRepo SlotRepository,
	publisher NotifyPublisher,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		orderRepo:    orderRepo,
		slotRepo:     slotRepo,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает заказ пользователя
// Чужой заказ и B2B заказ для пользователя неотличимы от несуществующего
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%s for user=%s", id, userID)

	order, err := s.getOrder(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if order.CreatedBy != userID || !order.IsB2C() {
		s.logger.Warn("GetByID: order id=%s is not visible to user=%s", id, userID)
		return nil, ErrOrderNotFound
	}

	s.logger.Info("GetByID: successfully fetched order id=%s", id)
	return models.FromDomainOrder(order), nil
}

// UpdateStatus переводит заказ в новый статус по конечному автомату
// Действие проверяющего: владелец заказа не проверяется.
// После фиксации владельцу B2C заказа отправляется уведомление.
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.OrderResponse, error) {
	s.logger.Info("UpdateStatus: updating order id=%s to status=%s by user=%s", id, req.Status, req.UserID)

	newStatus, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for order id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if req.Comment != nil && len(*req.Comment) > domain.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	var updated domain.Order

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		order, err := s.getOrder(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		updated, err = order.WithStatus(newStatus, req.Comment, now)
		if err != nil {
			s.logger.Warn("UpdateStatus: order id=%s: %v", id, err)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
		}

		if err := s.orderRepo.UpdateStatus(txCtx, id, updated.Status, req.Comment, now); err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			s.logger.Error("UpdateStatus: repository error for order id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, "UpdateStatus", &updated)

	s.logger.Info("UpdateStatus: successfully updated order id=%s to status=%s", id, updated.Status)
	return models.FromDomainOrder(&updated), nil
}

// Delete мягко удаляет заказ пользователя вместе со слотами
// NEW заказ при этом переходит в CANCELLED, остальные статусы сохраняются
func (s *Service) Delete(ctx context.Context, id string, userID string) error {
	s.logger.Info("Delete: deleting order id=%s by user=%s", id, userID)

	now := s.timeProvider.Now()
	var cancelled *domain.Order

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		order, err := s.getOrder(txCtx, "Delete", id)
		if err != nil {
			return err
		}

		if order.CreatedBy != userID {
			s.logger.Warn("Delete: user=%s is not the owner of order id=%s", userID, id)
			return ErrAccessDenied
		}

		var status *domain.OrderStatus
		if next, err := order.WithStatus(domain.StatusCancelled, nil, now); err == nil {
			status = &next.Status
			cancelled = &next
		}

		if err := s.orderRepo.Deactivate(txCtx, id, status, now); err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			s.logger.Error("Delete: repository error for order id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		released, err := s.slotRepo.DeactivateByOrder(txCtx, id)
		if err != nil {
			s.logger.Error("Delete: failed to deactivate slots of order id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - slot repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Delete: order id=%s released %d slots", id, released)
		return nil
	})
	if err != nil {
		return err
	}

	if cancelled != nil {
		s.notify(ctx, "Delete", cancelled)
	}

	s.logger.Info("Delete: successfully deleted order id=%s", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getOrder(ctx context.Context, op string, id string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("%s: order id=%s not found", op, id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("%s: repository error for order id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return order, nil
}

// notify публикует уведомление; ошибка публикации не отменяет зафиксированное изменение
func (s *Service) notify(ctx context.Context, op string, order *domain.Order) {
	intent := domain.NewNotifyIntent(order)
	if intent == nil {
		return
	}
	if err := s.publisher.Publish(ctx, intent); err != nil {
		s.logger.Error("%s: failed to publish notify intent for order id=%s: %v", op, order.ID, err)
	}
}
