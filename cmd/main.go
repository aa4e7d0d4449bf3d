package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/cancel_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_availability"
	getReservationHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/list_reservations"
	updateWindowHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_window"
	validateReservationHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/validate_reservation"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/capacity"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/depgraph"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
	addonRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/addon"
	reservationRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/reservation"
	windowRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/window"
	resourceServiceClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/resourceservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/recurrence"
	reservationsService "github.com/m04kA/SMC-AvailabilityService/internal/service/reservations"
	getAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
	updateWindowUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/update_window"
	validateReservationUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_reservation"
	"github.com/m04kA/SMC-AvailabilityService/internal/validator"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// addOnStore транслирует ошибки репозитория в ошибки depgraph
type addOnStore struct {
	repo *addonRepo.Repository
}

func (s *addOnStore) Get(ctx context.Context, id int64) (*domain.AddOnNode, error) {
	node, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, addonRepo.ErrAddOnNotFound) {
			return nil, fmt.Errorf("%w: add-on %d", depgraph.ErrAddOnNotFound, id)
		}
		return nil, err
	}
	return node, nil
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционного клиента
	resourceClient := resourceServiceClient.NewClient(
		cfg.ResourceService.URL,
		time.Duration(cfg.ResourceService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (ResourceService=%s timeout=%ds)",
		cfg.ResourceService.URL, cfg.ResourceService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		windowRepository      *windowRepo.Repository
		addonRepository       *addonRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		windowRepository = windowRepo.NewRepository(wrappedDB)
		addonRepository = addonRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		windowRepository = windowRepo.NewRepository(db)
		addonRepository = addonRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Собираем ядро: леджер вместимости, раскрытие окон, движок, граф
	policy := cfg.Policy.ToEnginePolicy()

	ledger := capacity.NewLedger(reservationRepository)
	expander := recurrence.New(policy.MaxOccurrences)
	availabilityEngine := engine.New(windowRepository, ledger, expander, policy, log)
	dependencyGraph := depgraph.NewGraph(&addOnStore{repo: addonRepository})
	reservationValidator := validator.New(availabilityEngine, dependencyGraph, ledger, log)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, log)

	// Инициализируем use cases
	validateReservationUseCase := validateReservationUC.NewUseCase(
		reservationRepository,
		reservationValidator,
		ledger,
		resourceClient,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		windowRepository,
		ledger,
		expander,
		policy,
		log,
	)

	updateWindowUseCase := updateWindowUC.New(
		windowRepository,
		availabilityEngine,
		txMgr,
		log,
	)

	// Инициализируем handlers
	validateReservation := validateReservationHandler.NewHandler(validateReservationUseCase, metricsCollector, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	updateWindow := updateWindowHandler.NewHandler(updateWindowUseCase, metricsCollector, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных слотов ресурса на дату
	api.HandleFunc("/resources/{resourceId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Проверка и создание бронирования (dry-run поддерживается)
	protected.HandleFunc("/reservations/validate", validateReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Список бронирований ресурса
	protected.HandleFunc("/resources/{resourceId}/reservations", listReservations.Handle).Methods(http.MethodGet)

	// --- Управление окнами доступности ---
	// Изменение конфигурации окна с проверкой последствий
	protected.HandleFunc("/windows/{windowId}", updateWindow.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
