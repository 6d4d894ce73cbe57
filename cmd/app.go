package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-FacilityBooking/internal/config"
	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	orderRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/order"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-FacilityBooking/internal/scheduler"
	createBookingUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_booking"
	reapExpiredOrdersUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/reap_expired_orders"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/metrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/redislock"
)

// notifyPublisher публикация уведомлений с освобождением ресурсов
type notifyPublisher interface {
	createBookingUC.NotifyPublisher
	Close() error
}

// app общие для команд зависимости: конфигурация, логгер, БД, Redis, публикация уведомлений
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	metrics  *metrics.Metrics // nil, если метрики выключены
	rawDB    *sql.DB
	db       *dbmetrics.DB
	redis    *redis.Client // nil, если Redis не настроен
	settings domain.BookingSettings
	clock    *createBookingUC.RealTimeProvider

	stopMetricsCh chan struct{}
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Booking.Location()
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	a := &app{
		cfg:           cfg,
		log:           log,
		settings:      cfg.Booking.Settings(),
		clock:         &createBookingUC.RealTimeProvider{Location: loc},
		stopMetricsCh: make(chan struct{}),
	}

	// Инициализируем метрики (если включены)
	if cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	a.rawDB, err = sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	a.rawDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	a.rawDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	a.rawDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	a.db = dbmetrics.WrapWithDefault(a.rawDB, a.metrics, a.stopMetricsCh)

	// Проверяем соединение
	if err := a.db.PingContext(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Redis нужен только для блокировки чистки между репликами
	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		log.Info("Connected to redis at %s", cfg.Redis.Addr)
	}

	return a, nil
}

// newPublisher Kafka, если указаны брокеры, иначе запись уведомлений в лог
func (a *app) newPublisher() notifyPublisher {
	brokers := notifier.SplitBrokers(a.cfg.Kafka.Brokers)
	if len(brokers) == 0 {
		a.log.Warn("Kafka brokers are not configured, notifications will be written to log")
		return notifier.NewLogPublisher(a.log)
	}

	a.log.Info("Notifications will be published to kafka topic=%s, brokers=%v", a.cfg.Kafka.Topic, brokers)
	return notifier.NewKafkaPublisher(notifier.NewWriter(brokers), a.cfg.Kafka.Topic, a.log)
}

// newReaper собирает планировщик чистки просроченных заказов
func (a *app) newReaper() *scheduler.Reaper {
	useCase := reapExpiredOrdersUC.NewUseCase(
		orderRepo.NewRepository(a.db),
		a.settings.HoldTimeout(),
		a.clock,
		a.log,
	)

	var locker scheduler.Locker
	if a.redis != nil {
		locker = redislock.New(a.redis, a.cfg.Redis.KeyPrefix)
	}

	return scheduler.NewReaper(useCase, locker, a.metrics, scheduler.ReaperConfig{
		Interval: a.cfg.Reaper.Interval(),
		LockTTL:  a.cfg.Reaper.LockTTL(),
	}, a.log)
}

// Close освобождает ресурсы в обратном порядке
func (a *app) Close() {
	close(a.stopMetricsCh)

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("Failed to close redis client: %v", err)
		}
	}
	if a.rawDB != nil {
		if err := a.rawDB.Close(); err != nil {
			a.log.Error("Failed to close database: %v", err)
		}
	}
	_ = a.log.Close()
}
