package scheduler

import (
	"context"
	"errors"
	"time"

	reapUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/reap_expired_orders"
	"github.com/m04kA/SMC-FacilityBooking/pkg/metrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/redislock"
)

const reaperLockKey = "reaper"

// Результаты прохода для метрики reaper_runs_total
const (
	resultOK      = "ok"
	resultSkipped = "skipped"
	resultError   = "error"
)

// ReapUseCase интерфейс use case чистки просроченных заказов
type ReapUseCase interface {
	Execute(ctx context.Context) (*reapUC.Response, error)
}

// Locker распределенная блокировка, чтобы из нескольких реплик чистку выполняла одна
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (string, error)
	Release(ctx context.Context, key, token string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ReaperConfig параметры планировщика
type ReaperConfig struct {
	Interval time.Duration
	LockTTL  time.Duration
}

// Reaper периодически запускает чистку просроченных заказов
type Reaper struct {
	useCase  ReapUseCase
	locker   Locker           // nil: блокировка не используется
	metrics  *metrics.Metrics // nil: метрики выключены
	interval time.Duration
	lockTTL  time.Duration
	logger   Logger
}

// NewReaper создает планировщик чистки
func NewReaper(useCase ReapUseCase, locker Locker, m *metrics.Metrics, cfg ReaperConfig, logger Logger) *Reaper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = cfg.Interval / 2
	}
	return &Reaper{
		useCase:  useCase,
		locker:   locker,
		metrics:  m,
		interval: cfg.Interval,
		lockTTL:  cfg.LockTTL,
		logger:   logger,
	}
}

// Run выполняет чистку сразу и затем на каждом тике до отмены ctx.
// Ошибка прохода логируется, следующий тик повторяет попытку.
func (r *Reaper) Run(ctx context.Context) {
	r.logger.Info("Reaper: started, interval=%s", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.RunOnce(ctx); err != nil {
			r.logger.Error("Reaper: sweep failed: %v", err)
		}

		select {
		case <-ctx.Done():
			r.logger.Info("Reaper: stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce выполняет один проход чистки
// Если блокировку держит другая реплика, проход пропускается без ошибки.
func (r *Reaper) RunOnce(ctx context.Context) error {
	if r.locker != nil {
		token, err := r.locker.Obtain(ctx, reaperLockKey, r.lockTTL)
		if errors.Is(err, redislock.ErrNotObtained) {
			r.logger.Info("Reaper: lock is held by another instance, skipping")
			r.observe(resultSkipped, 0)
			return nil
		}
		if err != nil {
			r.observe(resultError, 0)
			return err
		}
		defer r.release(token)
	}

	resp, err := r.useCase.Execute(ctx)
	if err != nil {
		r.observe(resultError, 0)
		return err
	}

	r.observe(resultOK, len(resp.CancelledIDs))
	return nil
}

func (r *Reaper) release(token string) {
	// ctx прохода может быть уже отменен, а блокировку нужно снять
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.locker.Release(ctx, reaperLockKey, token); err != nil {
		r.logger.Warn("Reaper: failed to release lock: %v", err)
	}
}

func (r *Reaper) observe(result string, cancelled int) {
	if r.metrics == nil {
		return
	}
	r.metrics.ReaperRunsTotal.WithLabelValues(result).Inc()
	if cancelled > 0 {
		r.metrics.ReapedOrdersTotal.WithLabelValues().Add(float64(cancelled))
	}
}
