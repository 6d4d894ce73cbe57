package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	createBookingHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/create_booking"
	createTimeConfigHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/create_time_config"
	deleteOrderHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/delete_order"
	getAvailableSlotsHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/get_available_slots"
	getOrderHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/get_order"
	getTimeConfigsHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/get_time_configs"
	updateOrderStatusHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/update_order_status"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	facilityRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/facility"
	orderRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/order"
	pricingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/pricing"
	slotRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/slot"
	templateRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/template"
	timeConfigRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/timeconfig"
	userServiceClient "github.com/m04kA/SMC-FacilityBooking/internal/integrations/userservice"
	ordersService "github.com/m04kA/SMC-FacilityBooking/internal/service/orders"
	pricingService "github.com/m04kA/SMC-FacilityBooking/internal/service/pricing"
	timeConfigsService "github.com/m04kA/SMC-FacilityBooking/internal/service/timeconfigs"
	timeWindowsService "github.com/m04kA/SMC-FacilityBooking/internal/service/timewindows"
	createBookingUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API и фоновую чистку просроченных заказов",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			return serve(ctx, a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	cfg, log := a.cfg, a.log
	log.Info("Starting SMC-FacilityBooking...")

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	publisher := a.newPublisher()
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close notify publisher: %v", err)
		}
	}()

	// Инициализируем репозитории
	facilityRepository := facilityRepo.NewRepository(a.db)
	orderRepository := orderRepo.NewRepository(a.db)
	slotRepository := slotRepo.NewRepository(a.db)
	templateRepository := templateRepo.NewRepository(a.db)
	pricingRepository := pricingRepo.NewRepository(a.db)
	timeConfigRepository := timeConfigRepo.NewRepository(a.db)

	txMgr := txmanager.NewTransactionManager(a.db)

	// Инициализируем сервисы
	catalog := timeWindowsService.NewCatalog(timeConfigRepository, slotRepository, a.settings.HoldTimeout(), log)
	prices := pricingService.NewResolver(pricingRepository, a.settings.DefaultPrice, log)
	orderSvc := ordersService.NewService(orderRepository, slotRepository, publisher, txMgr, a.clock, log)
	timeConfigSvc := timeConfigsService.NewService(timeConfigRepository, log)

	// Инициализируем use cases
	guard := createBookingUC.NewGuard(catalog, slotRepository, a.settings, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		orderRepository,
		facilityRepository,
		templateRepository,
		userClient,
		guard,
		prices,
		publisher,
		txMgr,
		a.clock,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		facilityRepository,
		catalog,
		prices,
		a.settings,
		&getAvailableSlotsUC.RealTimeProvider{Location: a.clock.Location},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getOrder := getOrderHandler.NewHandler(orderSvc, log)
	updateOrderStatus := updateOrderStatusHandler.NewHandler(orderSvc, log)
	deleteOrder := deleteOrderHandler.NewHandler(orderSvc, log)
	getTimeConfigs := getTimeConfigsHandler.NewHandler(timeConfigSvc, log)
	createTimeConfig := createTimeConfigHandler.NewHandler(timeConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if a.metrics != nil {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка слотов площадки на дату
	api.HandleFunc("/facilities/{facilityId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Окна закрытия и специальные окна дат
	api.HandleFunc("/time-configs", getTimeConfigs.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заказы ---
	createOrder := http.Handler(http.HandlerFunc(createBooking.Handle))
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst,
			cfg.RateLimit.IdleTTLDuration())
		createOrder = middleware.RateLimit(limiter, cfg.RateLimit.IPHeader)(createOrder)
		log.Info("Rate limit on order creation enabled: rps=%.2f, burst=%d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	protected.Handle("/orders", createOrder).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{orderId}", deleteOrder.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/orders/{orderId}/status", updateOrderStatus.Handle).Methods(http.MethodPatch)

	// --- Управление окнами (для администраторов) ---
	protected.HandleFunc("/time-configs", createTimeConfig.Handle).Methods(http.MethodPost)

	// Фоновая чистка просроченных заказов
	reaperCtx, stopReaper := context.WithCancel(ctx)
	defer stopReaper()

	var wg sync.WaitGroup
	if cfg.Reaper.Enabled {
		reaper := a.newReaper()
		wg.Add(1)
		go func() {
			defer wg.Done()
			reaper.Run(reaperCtx)
		}()
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения или падение сервера
	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serverErr:
		log.Error("Server failed: %v", runErr)
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopReaper()
	wg.Wait()

	log.Info("Server stopped gracefully")
	return runErr
}
