package reap_expired_orders

import (
	"context"
	"fmt"
	"time"
)

// UseCase отменяет неоплаченные заказы, чье удержание истекло
type UseCase struct {
	orderRepo    OrderRepository
	holdTimeout  time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// holdTimeout должен совпадать с тем, что использует проверка бронирования,
// иначе слот может считаться занятым заказом, который чистка уже отменила, или наоборот.
func NewUseCase(orderRepo OrderRepository, holdTimeout time.Duration, timeProvider TimeProvider, logger Logger) *UseCase {
	return &UseCase{
		orderRepo:    orderRepo,
		holdTimeout:  holdTimeout,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute переводит в CANCELLED все активные NEW заказы старше holdTimeout.
// Слоты не трогаются: заказ в CANCELLED перестает их удерживать.
// Повторный вызов безопасен.
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	cutoff := now.Add(-uc.holdTimeout)

	ids, err := uc.orderRepo.CancelExpired(ctx, cutoff, now)
	if err != nil {
		uc.logger.Error("ReapExpiredOrders: cutoff=%s: %v", cutoff.Format(time.RFC3339), err)
		return nil, fmt.Errorf("%w: CancelExpired: %v", ErrInternal, err)
	}

	if len(ids) > 0 {
		uc.logger.Info("ReapExpiredOrders: cancelled=%d, cutoff=%s, ids=%v", len(ids), cutoff.Format(time.RFC3339), ids)
	}

	return &Response{Cutoff: cutoff, CancelledIDs: ids}, nil
}
